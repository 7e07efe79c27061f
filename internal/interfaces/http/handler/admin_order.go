package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// OrderLedger is the staff view of orders
type OrderLedger interface {
	ListAll(ctx context.Context, filter orderapp.OrderListFilter) (*shared.Paginated[orderapp.OrderResponse], error)
	GetAny(ctx context.Context, orderID uuid.UUID) (*orderapp.OrderResponse, error)
}

// AdminOrderHandler serves read-only order listings for staff
type AdminOrderHandler struct {
	BaseHandler
	orders OrderLedger
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(orders OrderLedger) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders}
}

// List returns every order, filterable by status
func (h *AdminOrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.orders.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// Get returns any order by ID
func (h *AdminOrderHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetAny(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
