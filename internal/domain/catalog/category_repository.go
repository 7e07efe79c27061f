package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll lists categories ordered by name, optionally only active ones.
	// A limit of zero means no limit.
	FindAll(ctx context.Context, activeOnly bool, limit int) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// HasProducts reports whether any product references the category
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
}
