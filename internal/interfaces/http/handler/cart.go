package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
)

// CartOperations are the cart use cases
type CartOperations interface {
	GetCart(ctx context.Context, owner cart.Owner) (*cartapp.CartResponse, error)
	AddToCart(ctx context.Context, owner cart.Owner, req cartapp.AddToCartRequest) (*cartapp.CartMutationResponse, error)
	UpdateCartItem(ctx context.Context, owner cart.Owner, itemID uuid.UUID, req cartapp.UpdateCartItemRequest) (*cartapp.CartMutationResponse, error)
	RemoveFromCart(ctx context.Context, owner cart.Owner, itemID uuid.UUID) (*cartapp.CartMutationResponse, error)
}

// CartHandler serves the current caller's cart. Routes must run behind
// middleware.CartSession.
type CartHandler struct {
	BaseHandler
	carts CartOperations
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts CartOperations) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) owner(c *gin.Context) (cart.Owner, bool) {
	owner, ok := middleware.GetCartOwner(c)
	if !ok {
		h.BadRequest(c, "Cart session is missing")
	}
	return owner, ok
}

// Get returns the cart with its preview totals
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	resp, err := h.carts.GetCart(c.Request.Context(), owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds units of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var req cartapp.AddToCartRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.carts.AddToCart(c.Request.Context(), owner, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem sets a line quantity; zero removes the line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req cartapp.UpdateCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.carts.UpdateCartItem(c.Request.Context(), owner, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	itemID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.carts.RemoveFromCart(c.Request.Context(), owner, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
