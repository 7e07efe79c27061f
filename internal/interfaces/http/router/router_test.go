package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/auth"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/config"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/handler"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	body := ""
	if method == http.MethodPost || method == http.MethodPut {
		body = "{}"
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	t.Run("defaults to v1", func(t *testing.T) {
		r := NewRouter(gin.New())
		assert.Equal(t, "/api/v1", r.BasePath())
	})

	t.Run("honours api version", func(t *testing.T) {
		r := NewRouter(gin.New(), WithAPIVersion("v2"))
		assert.Equal(t, "/api/v2", r.BasePath())
	})

	t.Run("mounts registrars with shared middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		NewRouter(engine).
			Use(func(c *gin.Context) { c.Header("X-Api", "1"); c.Next() }).
			Register(g).
			Setup()

		w := serve(engine, http.MethodGet, "/api/v1/test/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
		assert.Equal(t, "1", w.Header().Get("X-Api"))
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("methods, middleware and subgroups", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

		g := NewDomainGroup("shop", "/shop").Use(func(c *gin.Context) {
			c.Header("X-Group", "shop")
			c.Next()
		})
		g.GET("/items", ok).POST("/items", ok).PUT("/items/:id", ok).DELETE("/items/:id", ok)
		g.Group("baskets", "/baskets").GET("", ok)

		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/shop/items"},
			{http.MethodPost, "/api/v1/shop/items"},
			{http.MethodPut, "/api/v1/shop/items/7"},
			{http.MethodDelete, "/api/v1/shop/items/7"},
			{http.MethodGet, "/api/v1/shop/baskets"},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, "shop", w.Header().Get("X-Group"))
		}
	})
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

var testJWT = auth.NewJWTService(config.JWTConfig{Secret: "router-test-secret-at-least-32-chars"})

func newStorefrontEngine(t *testing.T, contactLimit int) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var limiter *middleware.RateLimiter
	if contactLimit > 0 {
		limiter = middleware.NewRateLimiter(ctx, contactLimit, time.Minute)
	}

	h := Handlers{
		System:      handler.NewSystemHandler("freshmart", okPinger{}),
		Storefront:  handler.NewStorefrontHandler(nil),
		Cart:        handler.NewCartHandler(nil),
		Orders:      handler.NewOrderHandler(nil, nil),
		Reviews:     handler.NewReviewHandler(nil),
		Contact:     handler.NewContactHandler(nil),
		Categories:  handler.NewCategoryHandler(nil),
		Products:    handler.NewProductHandler(nil),
		AdminOrders: handler.NewAdminOrderHandler(nil),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	NewRouter(engine).Register(Groups(h, middleware.NewAuthenticator(testJWT, nil), limiter)...).Setup()
	return engine
}

func TestGroups_RouteTable(t *testing.T) {
	engine := newStorefrontEngine(t, 0)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/health",
		"GET /api/v1/storefront/home",
		"GET /api/v1/products",
		"GET /api/v1/products/:slug",
		"GET /api/v1/categories",
		"GET /api/v1/cart",
		"POST /api/v1/cart/items",
		"PUT /api/v1/cart/items/:id",
		"DELETE /api/v1/cart/items/:id",
		"POST /api/v1/checkout",
		"GET /api/v1/orders",
		"GET /api/v1/orders/:id",
		"POST /api/v1/products/:slug/reviews",
		"POST /api/v1/contact",
		"GET /api/v1/admin/categories",
		"POST /api/v1/admin/categories",
		"PUT /api/v1/admin/categories/:id",
		"DELETE /api/v1/admin/categories/:id",
		"GET /api/v1/admin/products",
		"POST /api/v1/admin/products/:id/restock",
		"GET /api/v1/admin/orders/:id",
		"GET /api/v1/admin/contact-messages",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestGroups_AccessControl(t *testing.T) {
	engine := newStorefrontEngine(t, 0)
	token, err := testJWT.GenerateToken(uuid.New(), "alice", "")
	require.NoError(t, err)
	customer := map[string]string{"Authorization": middleware.BearerPrefix + token}

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/health", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/checkout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/orders", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/admin/orders", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/admin/orders", customer).Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodDelete, "/api/v1/admin/products/"+uuid.NewString(), customer).Code)
}

func TestGroups_ContactRateLimit(t *testing.T) {
	engine := newStorefrontEngine(t, 1)

	// an empty body fails validation before reaching the inbox
	first := serve(engine, http.MethodPost, "/api/v1/contact", nil)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(engine, http.MethodPost, "/api/v1/contact", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
