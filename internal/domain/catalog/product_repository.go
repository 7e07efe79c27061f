package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductSort names the storefront listing orders
type ProductSort string

const (
	SortByName      ProductSort = "name"
	SortByPriceLow  ProductSort = "price_low"
	SortByPriceHigh ProductSort = "price_high"
	SortByNewest    ProductSort = "newest"
)

// ParseProductSort maps a query value to a ProductSort, defaulting to name
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortByPriceLow, SortByPriceHigh, SortByNewest:
		return ProductSort(s)
	default:
		return SortByName
	}
}

// ProductQuery filters a product listing
type ProductQuery struct {
	CategorySlug   string
	Search         string
	Sort           ProductSort
	ActiveOnly     bool
	FeaturedOnly   bool
	BestsellerOnly bool
	Page           int
	PageSize       int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveBySlug finds an active product by slug
	FindActiveBySlug(ctx context.Context, slug string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Search lists products matching the query and returns the total count
	Search(ctx context.Context, query ProductQuery) ([]Product, int64, error)

	// FindRelated finds active products sharing the category, excluding the product itself
	FindRelated(ctx context.Context, product *Product, limit int) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpdateDetails writes every column except stock_quantity, leaving the
	// stock to the ledger
	UpdateDetails(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug checks if a slug is taken by another product
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// StockLedger is the authoritative stock counter. Reserve must join the
// caller's transaction so the check and the decrement are one atomic step.
type StockLedger interface {
	// Reserve decrements stock by quantity if at least quantity units remain.
	// It fails with INSUFFICIENT_STOCK otherwise and leaves stock untouched.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) error

	// Release adds quantity units back to stock
	Release(ctx context.Context, productID uuid.UUID, quantity int) error
}

// DefaultPageSize is the storefront listing page size
const DefaultPageSize = 12

// Normalize fills in listing defaults
func (q ProductQuery) Normalize() ProductQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.Sort == "" {
		q.Sort = SortByName
	}
	return q
}

// Offset returns the row offset for the query's page
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
