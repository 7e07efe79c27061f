package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByOwner loads the owner's cart with its lines and their current
	// products. Returns shared.ErrNotFound when the owner has no cart yet.
	FindByOwner(ctx context.Context, owner Owner) (*Cart, error)

	// Save upserts the cart and makes its stored lines match cart.Items.
	// Returns shared.ErrAlreadyExists when another cart already holds the
	// owner, or another line the product.
	Save(ctx context.Context, cart *Cart) error

	// ClearItems deletes every line of the cart
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
