package router

import (
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/handler"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
)

// Handlers bundles everything mounted under the API prefix
type Handlers struct {
	System      *handler.SystemHandler
	Storefront  *handler.StorefrontHandler
	Cart        *handler.CartHandler
	Orders      *handler.OrderHandler
	Reviews     *handler.ReviewHandler
	Contact     *handler.ContactHandler
	Categories  *handler.CategoryHandler
	Products    *handler.ProductHandler
	AdminOrders *handler.AdminOrderHandler
}

// Groups returns the storefront's route groups. contactLimiter may be nil.
func Groups(h Handlers, authn *middleware.Authenticator, contactLimiter *middleware.RateLimiter) []RouteRegistrar {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)

	catalog := NewDomainGroup("catalog", "").Use(authn.Optional())
	catalog.GET("/storefront/home", h.Storefront.Home)
	catalog.GET("/products", h.Storefront.ListProducts)
	catalog.GET("/products/:slug", h.Storefront.GetProduct)
	catalog.GET("/categories", h.Storefront.ListCategories)

	cart := NewDomainGroup("cart", "/cart").Use(authn.Optional(), middleware.CartSession())
	cart.GET("", h.Cart.Get)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:id", h.Cart.UpdateItem)
	cart.DELETE("/items/:id", h.Cart.RemoveItem)

	account := NewDomainGroup("account", "").Use(authn.Required())
	account.POST("/checkout", h.Orders.Checkout)
	account.GET("/orders", h.Orders.List)
	account.GET("/orders/:id", h.Orders.Get)
	account.POST("/products/:slug/reviews", h.Reviews.Submit)

	contact := NewDomainGroup("contact", "/contact")
	if contactLimiter != nil {
		contact.Use(middleware.RateLimit(contactLimiter))
	}
	contact.POST("", h.Contact.Submit)

	return []RouteRegistrar{system, catalog, cart, account, contact, adminGroup(h, authn)}
}

func adminGroup(h Handlers, authn *middleware.Authenticator) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(authn.Required(), authn.RequireAdmin())

	categories := admin.Group("categories", "/categories")
	categories.GET("", h.Categories.List)
	categories.POST("", h.Categories.Create)
	categories.GET("/:id", h.Categories.Get)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)

	products := admin.Group("products", "/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/:id", h.Products.Get)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)
	products.POST("/:id/restock", h.Products.Restock)

	orders := admin.Group("orders", "/orders")
	orders.GET("", h.AdminOrders.List)
	orders.GET("/:id", h.AdminOrders.Get)

	admin.GET("/contact-messages", h.Contact.List)
	return admin
}
