package order

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validDelivery = DeliveryInfo{Address: "12 Market Street", Phone: "+254712345678", Notes: "Leave at the gate"}

func TestPlaceOrder(t *testing.T) {
	userID := uuid.New()
	lines := []Line{
		{ProductID: uuid.New(), ProductName: "Strawberries", Quantity: 3, UnitPrice: decimal.RequireFromString("8.00")},
		{ProductID: uuid.New(), ProductName: "Cream", Quantity: 2, UnitPrice: decimal.RequireFromString("1.75")},
	}

	t.Run("snapshots prices and totals", func(t *testing.T) {
		o, err := PlaceOrder(userID, validDelivery, lines)
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPlaced, o.Status)
		assert.Equal(t, userID, o.UserID)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("27.50")))
		assert.True(t, o.TotalAmount.Equal(o.ItemsTotal()))
		assert.Equal(t, 5, o.TotalQuantity())
		require.Len(t, o.Items, 2)
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("raises OrderPlaced event", func(t *testing.T) {
		o, err := PlaceOrder(userID, validDelivery, lines)
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, o.OrderNumber, evt.OrderNumber)
		assert.Equal(t, 2, evt.ItemCount)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := PlaceOrder(userID, validDelivery, nil)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := PlaceOrder(uuid.Nil, validDelivery, lines)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})

	t.Run("rejects invalid delivery", func(t *testing.T) {
		_, err := PlaceOrder(userID, DeliveryInfo{Address: "x", Phone: "12"}, lines)
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "INVALID_PHONE", verr.Code)
	})
}

func TestNewOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		n := NewOrderNumber()
		require.Regexp(t, pattern, n)
		seen[n] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

func TestDeliveryInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    DeliveryInfo
		wantErr bool
		fields  []string
	}{
		{"valid international", validDelivery, false, nil},
		{"valid nine digits", DeliveryInfo{Address: "a", Phone: "123456789"}, false, nil},
		{"valid fifteen digits", DeliveryInfo{Address: "a", Phone: "123456789012345"}, false, nil},
		{"too short", DeliveryInfo{Address: "a", Phone: "12345678"}, true, []string{"phone"}},
		{"letters", DeliveryInfo{Address: "a", Phone: "12345abcd"}, true, []string{"phone"}},
		{"missing address", DeliveryInfo{Phone: "123456789"}, true, []string{"address"}},
		{"everything missing", DeliveryInfo{}, true, []string{"address", "phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.True(t, errors.Is(err, shared.ErrValidation) || verr.Code == "INVALID_PHONE")
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPlaced.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
}
