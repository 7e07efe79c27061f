package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create inserts the order with its items. A taken order number yields
	// ErrDuplicateOrderNumber.
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser finds an order with its items only if userID placed it
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindByUser lists a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// FindAll lists all orders, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, int64, error)
}
