package order

import (
	"context"
	"fmt"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler records placed orders in the application log
type OrderPlacedHandler struct {
	logger *zap.Logger
}

// NewOrderPlacedHandler creates a new handler for order placed events
func NewOrderPlacedHandler(logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderPlaced),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderPlaced, event.EventType())
	}

	h.logger.Info("order placed event",
		zap.String("event_id", placed.EventID().String()),
		zap.String("order_id", placed.OrderID.String()),
		zap.String("order_number", placed.OrderNumber),
		zap.String("user_id", placed.UserID.String()),
		zap.String("total_amount", placed.TotalAmount.StringFixed(2)),
		zap.Int("item_count", placed.ItemCount),
	)
	return nil
}

var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
