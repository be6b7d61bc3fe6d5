package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"brocante/internal/models"
)

// InMemoryOfferRepository is an in-memory implementation of OfferRepository.
// Offers are kept in insertion order so the store-default sort matches the
// database behavior.
type InMemoryOfferRepository struct {
	offers []models.Offer
	mu     sync.RWMutex
}

// NewInMemoryOfferRepository creates a new instance of InMemoryOfferRepository.
func NewInMemoryOfferRepository() *InMemoryOfferRepository {
	return &InMemoryOfferRepository{}
}

// Create appends a new offer.
func (r *InMemoryOfferRepository) Create(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	r.offers = append(r.offers, *offer)
	return nil
}

// Search applies the filters, sort and pagination in memory with the same
// semantics as the GORM implementation.
func (r *InMemoryOfferRepository) Search(q SearchQuery) (int64, []models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		if q.Title != "" && !strings.Contains(strings.ToLower(o.ProductName), strings.ToLower(q.Title)) {
			continue
		}
		if q.PriceMin != nil && o.ProductPrice < *q.PriceMin {
			continue
		}
		if q.PriceMax != nil && o.ProductPrice > *q.PriceMax {
			continue
		}
		matched = append(matched, o)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ProductPrice < matched[j].ProductPrice
		})
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ProductPrice > matched[j].ProductPrice
		})
	}

	count := int64(len(matched))

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(matched) {
		return count, []models.Offer{}, nil
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}

	pageOffers := make([]models.Offer, end-start)
	copy(pageOffers, matched[start:end])
	return count, pageOffers, nil
}

// Len reports the number of stored offers. Test helper.
func (r *InMemoryOfferRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.offers)
}

// Get returns a stored offer by ID. Test helper.
func (r *InMemoryOfferRepository) Get(id string) (*models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.offers {
		if o.ID == id {
			offer := o
			return &offer, nil
		}
	}
	return nil, fmt.Errorf("offer with ID %s not found", id)
}
