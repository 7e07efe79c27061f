package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/review"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Active      *bool   `json:"is_active"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	CategoryID      uuid.UUID        `json:"category_id" binding:"required"`
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Slug            string           `json:"slug" binding:"max=220"`
	Description     string           `json:"description" binding:"max=5000"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
	StockQuantity   int              `json:"stock_quantity" binding:"min=0"`
	ImageURL        string           `json:"image_url" binding:"omitempty,url,max=500"`
	Featured        bool             `json:"featured"`
	Bestseller      bool             `json:"is_bestseller"`
}

// UpdateProductRequest represents a request to update a product. Nil fields
// are left unchanged.
type UpdateProductRequest struct {
	CategoryID      *uuid.UUID       `json:"category_id"`
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Slug            *string          `json:"slug" binding:"omitempty,max=220"`
	Description     *string          `json:"description" binding:"omitempty,max=5000"`
	Price           *decimal.Decimal `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
	ClearDiscount   bool             `json:"clear_discount"`
	StockQuantity   *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	ImageURL        *string          `json:"image_url" binding:"omitempty,max=500"`
	Featured        *bool            `json:"featured"`
	Bestseller      *bool            `json:"is_bestseller"`
	Active          *bool            `json:"is_active"`
}

// RestockRequest adds units to a product's stock
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=100000"`
}

// ShopFilter holds the storefront listing query
type ShopFilter struct {
	Category string `form:"category" binding:"max=120"`
	Search   string `form:"q" binding:"max=100"`
	Sort     string `form:"sort" binding:"omitempty,oneof=name price_low price_high newest"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// AdminProductFilter holds the admin product listing query
type AdminProductFilter struct {
	Category string `form:"category"`
	Search   string `form:"q"`
	Sort     string `form:"sort" binding:"omitempty,oneof=name price_low price_high newest"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"is_active"`
}

// ProductResponse represents a product card in listings
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	CategoryID      uuid.UUID        `json:"category_id"`
	CategoryName    string           `json:"category_name,omitempty"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	HasDiscount     bool             `json:"has_discount"`
	StockQuantity   int              `json:"stock_quantity"`
	InStock         bool             `json:"in_stock"`
	ImageURL        string           `json:"image_url,omitempty"`
	Featured        bool             `json:"featured"`
	Bestseller      bool             `json:"is_bestseller"`
	Active          bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	ProductSlug string    `json:"product_slug,omitempty"`
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// HomeResponse aggregates the home page sections
type HomeResponse struct {
	Featured      []ProductResponse  `json:"featured_products"`
	Bestsellers   []ProductResponse  `json:"bestsellers"`
	Categories    []CategoryResponse `json:"categories"`
	RecentReviews []ReviewResponse   `json:"recent_reviews"`
}

// ProductDetailResponse is the single product page
type ProductDetailResponse struct {
	Product     ProductResponse   `json:"product"`
	Reviews     []ReviewResponse  `json:"reviews"`
	AvgRating   float64           `json:"avg_rating"`
	ReviewCount int64             `json:"review_count"`
	Related     []ProductResponse `json:"related_products"`
}

// ToCategoryResponse converts a domain Category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

// ToProductResponse converts a domain Product
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		EffectivePrice:  p.EffectivePrice(),
		HasDiscount:     p.HasDiscount(),
		StockQuantity:   p.StockQuantity,
		InStock:         p.StockQuantity > 0,
		ImageURL:        p.ImageURL,
		Featured:        p.Featured,
		Bestseller:      p.Bestseller,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToReviewResponse converts a domain Review
func ToReviewResponse(r *review.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.Product != nil {
		resp.ProductName = r.Product.Name
		resp.ProductSlug = r.Product.Slug
	}
	return resp
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out
}
