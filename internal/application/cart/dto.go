package cart

import (
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddToCartRequest adds units of a product. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  *int      `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// UpdateCartItemRequest sets a line quantity. Zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"max=999"`
}

// CartItemResponse is one cart line priced at the current product price
type CartItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductSlug    string          `json:"product_slug"`
	ImageURL       string          `json:"image_url,omitempty"`
	Price          decimal.Decimal `json:"price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Quantity       int             `json:"quantity"`
	InStock        int             `json:"in_stock"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// CartResponse is the cart view. Totals are a preview and are recomputed on
// every read.
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// CartMutationResponse pairs the updated cart with a status message
type CartMutationResponse struct {
	Message string        `json:"message"`
	Cart    *CartResponse `json:"cart"`
}

// ToCartResponse converts a cart to its response form
func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		resp := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		}
		if p := item.Product; p != nil {
			resp.ProductName = p.Name
			resp.ProductSlug = p.Slug
			resp.ImageURL = p.ImageURL
			resp.Price = p.Price
			resp.EffectivePrice = p.EffectivePrice()
			resp.InStock = p.StockQuantity
		}
		items = append(items, resp)
	}
	return &CartResponse{
		ID:         c.ID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
