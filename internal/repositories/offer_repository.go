package repositories

import "brocante/internal/models"

// PageSize is the fixed number of offers returned per search page.
const PageSize = 5

// Sort flags accepted by Search. Anything else means store-default order.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// SearchQuery holds the optional, AND-combined offer search filters.
type SearchQuery struct {
	Title    string   // case-insensitive substring match on product name
	PriceMin *float64 // inclusive lower bound
	PriceMax *float64 // inclusive upper bound
	Sort     string   // SortPriceAsc, SortPriceDesc or empty
	Page     int      // 1-indexed; values below 1 are treated as 1
}

// OfferRepository defines the interface for offer data access.
type OfferRepository interface {
	Create(offer *models.Offer) error
	// Search returns the total number of matching offers (ignoring
	// pagination) and the requested page with owners populated.
	Search(query SearchQuery) (int64, []models.Offer, error)
}
