package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 128

// Checkouter places orders
type Checkouter interface {
	Checkout(ctx context.Context, userID uuid.UUID, req orderapp.CheckoutRequest, idempotencyKey string) (*orderapp.OrderResponse, error)
}

// OrderReader reads order history
type OrderReader interface {
	MyOrders(ctx context.Context, userID uuid.UUID, filter orderapp.OrderListFilter) (*shared.Paginated[orderapp.OrderResponse], error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*orderapp.OrderResponse, error)
}

// CheckoutResponse is returned after an order is placed
type CheckoutResponse struct {
	Message string                  `json:"message"`
	Order   *orderapp.OrderResponse `json:"order"`
}

// OrderHandler serves checkout and the caller's order history. All routes
// require authentication.
type OrderHandler struct {
	BaseHandler
	checkout Checkouter
	orders   OrderReader
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout Checkouter, orders OrderReader) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// Checkout turns the caller's cart into an order. An Idempotency-Key header
// makes retries of the same submission return the first order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	key := strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader))
	if len(key) > MaxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	var req orderapp.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}
	placed, err := h.checkout.Checkout(c.Request.Context(), userID, req, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, CheckoutResponse{
		Message: "Order placed successfully! Order number: " + placed.OrderNumber,
		Order:   placed,
	})
}

// List returns the caller's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.orders.MyOrders(c.Request.Context(), middleware.GetJWTUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// Get returns one of the caller's orders; used for the order success view
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), middleware.GetJWTUserID(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
