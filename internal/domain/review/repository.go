package review

import (
	"context"

	"github.com/google/uuid"
)

// Summary aggregates the ratings of one product
type Summary struct {
	Average float64
	Count   int64
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// Upsert inserts the review or overwrites the existing one for the same
	// (product, user) pair
	Upsert(ctx context.Context, review *Review) error

	// FindByProduct lists a product's reviews, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]Review, error)

	// FindRecent lists the newest reviews across all products
	FindRecent(ctx context.Context, limit int) ([]Review, error)

	// Summarize returns the rating average and count for a product
	Summarize(ctx context.Context, productID uuid.UUID) (Summary, error)
}
