package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Offer represents a published product listing.
type Offer struct {
	ID                 string  `gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductName        string  `gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	ProductDescription string  `gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	ProductPrice       float64 `validate:"required,gt=0"`
	Brand              string  `gorm:"type:varchar(100)"`
	Size               string  `gorm:"type:varchar(100)"`
	Condition          string  `gorm:"type:varchar(100)"`
	Color              string  `gorm:"type:varchar(100)"`
	City               string  `gorm:"type:varchar(100)"`
	ImageURL           string  `gorm:"type:varchar(500)"`
	OwnerID            string  `gorm:"type:varchar(36);index" validate:"required"`
	Owner              *User   `gorm:"foreignKey:OwnerID"`
	gorm.Model
}

// offerOwner is the reduced owner view embedded in offer payloads: only the
// account sub-object, never credentials.
type offerOwner struct {
	ID      string  `json:"id"`
	Account Account `json:"account"`
}

type offerJSON struct {
	ID                 string              `json:"id"`
	ProductName        string              `json:"product_name"`
	ProductDescription string              `json:"product_description"`
	ProductPrice       float64             `json:"product_price"`
	ProductDetails     []map[string]string `json:"product_details"`
	ProductImage       map[string]string   `json:"product_image"`
	Owner              *offerOwner         `json:"owner,omitempty"`
}

// Details returns the offer's detail records in their fixed order.
func (o Offer) Details() []map[string]string {
	return []map[string]string{
		{"MARQUE": o.Brand},
		{"TAILLE": o.Size},
		{"ÉTAT": o.Condition},
		{"COULEUR": o.Color},
		{"EMPLACEMENT": o.City},
	}
}

// MarshalJSON shapes the offer into its wire form: detail records as an
// ordered list of single-key objects and the owner reduced to its account
// sub-object when populated.
func (o Offer) MarshalJSON() ([]byte, error) {
	out := offerJSON{
		ID:                 o.ID,
		ProductName:        o.ProductName,
		ProductDescription: o.ProductDescription,
		ProductPrice:       o.ProductPrice,
		ProductDetails:     o.Details(),
		ProductImage:       map[string]string{"secure_url": o.ImageURL},
	}
	if o.Owner != nil {
		out.Owner = &offerOwner{ID: o.Owner.ID, Account: o.Owner.Account}
	}
	return json.Marshal(out)
}
