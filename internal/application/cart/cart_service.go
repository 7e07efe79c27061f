package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// Status messages returned with cart mutations
const (
	MsgItemRemoved = "Item removed from cart"
	MsgCartUpdated = "Cart updated"
)

// CartService handles cart reads and mutations for one owner at a time
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the owner's cart. An owner without a cart gets an empty
// view and nothing is stored.
func (s *CartService) GetCart(ctx context.Context, owner cart.Owner) (*CartResponse, error) {
	c, err := s.loadOrNew(ctx, owner)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// AddToCart adds units of an active product, accumulating onto an existing line
func (s *CartService) AddToCart(ctx context.Context, owner cart.Owner, req AddToCartRequest) (*CartMutationResponse, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.addItem(ctx, owner, product, quantity)
	if errors.Is(err, shared.ErrAlreadyExists) {
		// a concurrent request stored this owner's cart or line first
		s.logger.Debug("cart save raced, reloading", zap.String("product_id", product.ID.String()))
		c, err = s.addItem(ctx, owner, product, quantity)
	}
	if err != nil {
		return nil, err
	}

	return &CartMutationResponse{
		Message: fmt.Sprintf("%s added to cart!", product.Name),
		Cart:    ToCartResponse(c),
	}, nil
}

// UpdateCartItem sets a line quantity; zero or less removes the line
func (s *CartService) UpdateCartItem(ctx context.Context, owner cart.Owner, itemID uuid.UUID, req UpdateCartItemRequest) (*CartMutationResponse, error) {
	c, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Cart item")
		}
		return nil, err
	}

	removed, err := c.UpdateItem(itemID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	msg := MsgCartUpdated
	if removed {
		msg = MsgItemRemoved
	}
	return &CartMutationResponse{Message: msg, Cart: ToCartResponse(c)}, nil
}

// RemoveFromCart drops a line. Removing a line that is already gone succeeds.
func (s *CartService) RemoveFromCart(ctx context.Context, owner cart.Owner, itemID uuid.UUID) (*CartMutationResponse, error) {
	c, err := s.loadOrNew(ctx, owner)
	if err != nil {
		return nil, err
	}

	if c.RemoveItem(itemID) {
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
	}
	return &CartMutationResponse{Message: MsgItemRemoved, Cart: ToCartResponse(c)}, nil
}

func (s *CartService) addItem(ctx context.Context, owner cart.Owner, product *catalog.Product, quantity int) (*cart.Cart, error) {
	c, err := s.loadOrNew(ctx, owner)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddItem(product, quantity); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			s.logger.Info("add to cart rejected: insufficient stock",
				zap.String("product_id", product.ID.String()),
				zap.Int("requested", quantity),
				zap.Int("available", product.StockQuantity),
			)
		}
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) loadOrNew(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByOwner(ctx, owner)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return cart.NewCart(owner)
}
