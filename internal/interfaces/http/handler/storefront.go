package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// Storefront is the read side of the shop
type Storefront interface {
	Home(ctx context.Context) (*catalogapp.HomeResponse, error)
	Shop(ctx context.Context, filter catalogapp.ShopFilter) (*shared.Paginated[catalogapp.ProductResponse], error)
	ProductDetail(ctx context.Context, slug string) (*catalogapp.ProductDetailResponse, error)
	ListCategories(ctx context.Context) ([]catalogapp.CategoryResponse, error)
}

// StorefrontHandler serves the public catalog
type StorefrontHandler struct {
	BaseHandler
	storefront Storefront
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefront Storefront) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront}
}

// Home returns featured products, bestsellers, categories and recent reviews
func (h *StorefrontHandler) Home(c *gin.Context) {
	home, err := h.storefront.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, home)
}

// ListProducts returns a page of active products.
// Query: category (slug), q, sort (name|price_low|price_high|newest), page.
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.ShopFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.storefront.Shop(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// GetProduct returns the detail view of an active product
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	detail, err := h.storefront.ProductDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// ListCategories returns the active categories
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.storefront.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
