package cart

import (
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart holds the line items a shopper intends to buy. Totals are computed
// from the current product prices on every call and are only a preview; the
// order snapshots prices at checkout.
type Cart struct {
	shared.BaseAggregateRoot
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	SessionToken *string    `gorm:"type:varchar(64);uniqueIndex"`
	Items        []CartItem `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (cart, product) line. Quantity is always at least 1; a line
// that would drop to zero is removed instead.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:1"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:2"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal is the effective price times quantity
func (i *CartItem) LineTotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCart creates an empty cart for owner
func NewCart(owner Owner) (*Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	c := &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Items:             make([]CartItem, 0),
	}
	if owner.IsUser() {
		id := owner.UserID
		c.UserID = &id
	} else {
		token := owner.SessionToken
		c.SessionToken = &token
	}
	return c, nil
}

// Owner returns the cart's owner key
func (c *Cart) Owner() Owner {
	if c.UserID != nil {
		return UserOwner(*c.UserID)
	}
	if c.SessionToken != nil {
		return SessionOwner(*c.SessionToken)
	}
	return Owner{}
}

// AddItem adds quantity units of product. An existing line for the product
// accumulates. The resulting line quantity must not exceed the product stock;
// on failure the cart is left unchanged.
func (c *Cart) AddItem(product *catalog.Product, quantity int) (*CartItem, error) {
	if product == nil || !product.IsActive() {
		return nil, shared.NewNotFoundError("Product")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	if item := c.itemByProduct(product.ID); item != nil {
		total := item.Quantity + quantity
		if err := product.EnsureAvailable(total); err != nil {
			return nil, err
		}
		item.Quantity = total
		item.Product = product
		item.Touch()
		c.Touch()
		return item, nil
	}

	if err := product.EnsureAvailable(quantity); err != nil {
		return nil, err
	}
	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  product.ID,
		Product:    product,
		Quantity:   quantity,
	})
	c.Touch()
	return &c.Items[len(c.Items)-1], nil
}

// UpdateItem sets the quantity of a line. A quantity of zero or less removes
// the line and reports removed=true. A quantity above the product stock fails
// with INSUFFICIENT_STOCK and leaves the line untouched.
func (c *Cart) UpdateItem(itemID uuid.UUID, quantity int) (removed bool, err error) {
	item := c.ItemByID(itemID)
	if item == nil {
		return false, shared.NewNotFoundError("Cart item")
	}
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return true, nil
	}
	if item.Product == nil {
		return false, shared.NewNotFoundError("Product")
	}
	if err := item.Product.EnsureAvailable(quantity); err != nil {
		return false, err
	}
	item.Quantity = quantity
	item.Touch()
	c.Touch()
	return false, nil
}

// RemoveItem drops a line. Removing a missing line is a no-op; the return
// value reports whether anything was removed.
func (c *Cart) RemoveItem(itemID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.Touch()
}

// ItemByID returns the line with the given ID, or nil
func (c *Cart) ItemByID(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) itemByProduct(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// TotalPrice sums effective price times quantity over all lines using the
// prices currently attached to the lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// TotalItems sums the quantities of all lines
func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs returns the product of every line, in line order
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
