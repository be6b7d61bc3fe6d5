package repositories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"brocante/internal/models"
)

// GORMOfferRepository is a GORM implementation of OfferRepository.
type GORMOfferRepository struct {
	db *gorm.DB
}

// NewGORMOfferRepository creates a new instance of GORMOfferRepository.
func NewGORMOfferRepository(db *gorm.DB) *GORMOfferRepository {
	return &GORMOfferRepository{
		db: db,
	}
}

// Create creates a new offer in the database.
func (r *GORMOfferRepository) Create(offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// filtered builds a fresh query with the search filters applied. Count and
// Find each get their own chain so GORM statement state is never reused.
func (r *GORMOfferRepository) filtered(q SearchQuery) *gorm.DB {
	tx := r.db.Model(&models.Offer{})
	if q.Title != "" {
		tx = tx.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(q.Title)+"%")
	}
	if q.PriceMin != nil {
		tx = tx.Where("product_price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		tx = tx.Where("product_price <= ?", *q.PriceMax)
	}
	return tx
}

// Search retrieves one page of offers matching the query, with owners
// preloaded, plus the total match count. Out-of-range pages yield an empty
// page, never an error.
func (r *GORMOfferRepository) Search(q SearchQuery) (int64, []models.Offer, error) {
	var count int64
	if err := r.filtered(q).Count(&count).Error; err != nil {
		return 0, nil, fmt.Errorf("failed to count offers: %w", err)
	}

	tx := r.filtered(q)
	switch q.Sort {
	case SortPriceAsc:
		tx = tx.Order("product_price asc")
	case SortPriceDesc:
		tx = tx.Order("product_price desc")
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	offers := make([]models.Offer, 0, PageSize)
	err := tx.Preload("Owner").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&offers).Error
	if err != nil {
		return 0, nil, fmt.Errorf("failed to search offers: %w", err)
	}
	return count, offers, nil
}
