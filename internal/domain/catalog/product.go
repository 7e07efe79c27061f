package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item in the catalog. Its StockQuantity is the
// authoritative count used by the stock ledger.
type Product struct {
	shared.BaseAggregateRoot
	CategoryID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Category        *Category        `gorm:"foreignKey:CategoryID"`
	Name            string           `gorm:"type:varchar(200);not null"`
	Slug            string           `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description     string           `gorm:"type:text"`
	Price           decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	DiscountedPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	StockQuantity   int              `gorm:"not null;check:chk_products_stock_non_negative,stock_quantity >= 0"`
	Active          bool             `gorm:"column:is_active;not null"`
	Featured        bool             `gorm:"not null"`
	Bestseller      bool             `gorm:"column:is_bestseller;not null"`
	ImageURL        string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product with no discount
func NewProduct(categoryID uuid.UUID, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        categoryID,
		Name:              strings.TrimSpace(name),
		Slug:              Slugify(name),
		Price:             price,
		StockQuantity:     stock,
		Active:            true,
	}
	return product, nil
}

// EffectivePrice is the discounted price when it is set and lower than the
// list price, otherwise the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil && p.DiscountedPrice.LessThan(p.Price) {
		return *p.DiscountedPrice
	}
	return p.Price
}

// HasDiscount reports whether the effective price is below the list price
func (p *Product) HasDiscount() bool {
	return p.EffectivePrice().LessThan(p.Price)
}

// IsActive reports whether the product may be shown and sold
func (p *Product) IsActive() bool {
	return p.Active
}

// CanSupply reports whether quantity units are currently in stock
func (p *Product) CanSupply(quantity int) bool {
	return quantity <= p.StockQuantity
}

// EnsureAvailable returns an INSUFFICIENT_STOCK error when the product cannot
// supply quantity units
func (p *Product) EnsureAvailable(quantity int) error {
	if !p.CanSupply(quantity) {
		return shared.NewInsufficientStockError(p.Name, quantity, p.StockQuantity)
	}
	return nil
}

// Update replaces the descriptive fields of the product
func (p *Product) Update(name, description, imageURL string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.ImageURL = imageURL
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetHighlights sets the home page flags
func (p *Product) SetHighlights(featured, bestseller bool) {
	p.Featured = featured
	p.Bestseller = bestseller
	p.Touch()
}

// SetSlug overrides the generated slug
func (p *Product) SetSlug(slug string) error {
	slug = Slugify(slug)
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	p.Slug = slug
	p.Touch()
	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()
}

// SetPrices sets the list price and the optional discounted price
func (p *Product) SetPrices(price decimal.Decimal, discounted *decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if discounted != nil {
		if err := validatePrice(*discounted); err != nil {
			return err
		}
	}
	p.Price = price
	p.DiscountedPrice = discounted
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetStock overwrites the stock count. Only the admin console uses this;
// checkout goes through the StockLedger.
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	p.StockQuantity = quantity
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Activate makes the product visible in the storefront
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
	p.IncrementVersion()
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
