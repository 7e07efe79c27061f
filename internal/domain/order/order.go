package order

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order.
// Checkout creates orders as placed; no transitions beyond that are defined.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPlaced, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderNumberPrefix prefixes every human-readable order number
const OrderNumberPrefix = "ORD-"

// ErrDuplicateOrderNumber is returned by repositories when an order number is already taken
var ErrDuplicateOrderNumber = shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "Order number already exists")

// Order is the record of a completed checkout. Item prices and the total are
// snapshots taken at checkout and are never recomputed.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	Phone           string          `gorm:"type:varchar(20);not null"`
	Notes           string          `gorm:"type:text"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a purchased line with the unit price paid
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal is price times quantity
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Line is one product to be ordered, with its unit price already resolved
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// PlaceOrder creates a placed order for userID from lines. The total is the
// sum of the line subtotals.
func PlaceOrder(userID uuid.UUID, delivery DeliveryInfo, lines []Line) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}
	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       NewOrderNumber(),
		UserID:            userID,
		Status:            OrderStatusPlaced,
		TotalAmount:       decimal.Zero,
		DeliveryAddress:   strings.TrimSpace(delivery.Address),
		Phone:             strings.TrimSpace(delivery.Phone),
		Notes:             strings.TrimSpace(delivery.Notes),
		Items:             make([]OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		item := OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		}
		o.TotalAmount = o.TotalAmount.Add(item.Subtotal())
		o.Items = append(o.Items, item)
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// RegenerateNumber assigns a fresh order number. It is only valid before the
// order has been persisted.
func (o *Order) RegenerateNumber() {
	o.OrderNumber = NewOrderNumber()
	o.ClearDomainEvents()
	o.AddDomainEvent(NewOrderPlacedEvent(o))
}

// ItemsTotal recomputes the sum of the item subtotals
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// TotalQuantity sums the item quantities
func (o *Order) TotalQuantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// BelongsTo reports whether the order was placed by userID
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// NewOrderNumber returns "ORD-" followed by 8 uppercase hex characters taken
// from a random UUID.
func NewOrderNumber() string {
	id, err := uuid.NewRandom()
	if err != nil {
		var b [4]byte
		_, _ = rand.Read(b[:])
		return OrderNumberPrefix + strings.ToUpper(hex.EncodeToString(b[:]))
	}
	return OrderNumberPrefix + strings.ToUpper(hex.EncodeToString(id[:4]))
}
