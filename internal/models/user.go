package models

import "gorm.io/gorm"

// Account is the public-facing subset of a User (username, avatar) exposed
// when listing offers.
type Account struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Avatar   string `json:"avatar,omitempty"`
}

// User represents a registered user.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Account    Account `json:"account" gorm:"embedded;embeddedPrefix:account_"`
	Newsletter bool    `json:"newsletter"`
	Token      string  `json:"-" gorm:"index;type:varchar(64)"`
	Hash       string  `json:"-" gorm:"type:varchar(64)"` // Never serialized for security
	Salt       string  `json:"-" gorm:"type:varchar(64)"`
	gorm.Model `json:"-"` // CreatedAt, UpdatedAt, DeletedAt
}
