package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/cart"
	catalogapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/catalog"
	contactapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/contact"
	orderapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/order"
	reviewapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/auth"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/config"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/dto"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// ---- test plumbing ----

var testJWT = auth.NewJWTService(config.JWTConfig{
	Secret:                "handler-test-secret-at-least-32-chars",
	AccessTokenExpiration: time.Hour,
})

func bearer(t *testing.T, userID uuid.UUID, username, role string) string {
	t.Helper()
	token, err := testJWT.GenerateToken(userID, username, role)
	require.NoError(t, err)
	return middleware.BearerPrefix + token
}

func newTestEngine() (*gin.Engine, *middleware.Authenticator) {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r, middleware.NewAuthenticator(testJWT, nil)
}

func doJSON(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// ---- mocks ----

type MockStorefront struct{ mock.Mock }

func (m *MockStorefront) Home(ctx context.Context) (*catalogapp.HomeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.HomeResponse), args.Error(1)
}

func (m *MockStorefront) Shop(ctx context.Context, filter catalogapp.ShopFilter) (*shared.Paginated[catalogapp.ProductResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ProductResponse]), args.Error(1)
}

func (m *MockStorefront) ProductDetail(ctx context.Context, slug string) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductDetailResponse), args.Error(1)
}

func (m *MockStorefront) ListCategories(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}

type MockCartOperations struct{ mock.Mock }

func (m *MockCartOperations) GetCart(ctx context.Context, owner cart.Owner) (*cartapp.CartResponse, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartResponse), args.Error(1)
}

func (m *MockCartOperations) AddToCart(ctx context.Context, owner cart.Owner, req cartapp.AddToCartRequest) (*cartapp.CartMutationResponse, error) {
	args := m.Called(ctx, owner, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartMutationResponse), args.Error(1)
}

func (m *MockCartOperations) UpdateCartItem(ctx context.Context, owner cart.Owner, itemID uuid.UUID, req cartapp.UpdateCartItemRequest) (*cartapp.CartMutationResponse, error) {
	args := m.Called(ctx, owner, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartMutationResponse), args.Error(1)
}

func (m *MockCartOperations) RemoveFromCart(ctx context.Context, owner cart.Owner, itemID uuid.UUID) (*cartapp.CartMutationResponse, error) {
	args := m.Called(ctx, owner, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartapp.CartMutationResponse), args.Error(1)
}

type MockCheckouter struct{ mock.Mock }

func (m *MockCheckouter) Checkout(ctx context.Context, userID uuid.UUID, req orderapp.CheckoutRequest, key string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, userID, req, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) MyOrders(ctx context.Context, userID uuid.UUID, filter orderapp.OrderListFilter) (*shared.Paginated[orderapp.OrderResponse], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[orderapp.OrderResponse]), args.Error(1)
}

func (m *MockOrderReader) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderReader) ListAll(ctx context.Context, filter orderapp.OrderListFilter) (*shared.Paginated[orderapp.OrderResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[orderapp.OrderResponse]), args.Error(1)
}

func (m *MockOrderReader) GetAny(ctx context.Context, orderID uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

type MockReviewSubmitter struct{ mock.Mock }

func (m *MockReviewSubmitter) SubmitReview(ctx context.Context, reviewer *reviewapp.Reviewer, slug string, req reviewapp.SubmitReviewRequest) (*reviewapp.SubmitReviewResponse, error) {
	args := m.Called(ctx, reviewer, slug, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reviewapp.SubmitReviewResponse), args.Error(1)
}

type MockContactInbox struct{ mock.Mock }

func (m *MockContactInbox) Submit(ctx context.Context, req contactapp.SubmitRequest) (*contactapp.SubmitResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactapp.SubmitResponse), args.Error(1)
}

func (m *MockContactInbox) List(ctx context.Context, filter contactapp.ListFilter) (*shared.Paginated[contactapp.MessageResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[contactapp.MessageResponse]), args.Error(1)
}

type MockCategoryAdmin struct{ mock.Mock }

func (m *MockCategoryAdmin) List(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAdmin) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAdmin) Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAdmin) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAdmin) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductAdmin struct{ mock.Mock }

func (m *MockProductAdmin) List(ctx context.Context, filter catalogapp.AdminProductFilter) (*shared.Paginated[catalogapp.ProductResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ProductResponse]), args.Error(1)
}

func (m *MockProductAdmin) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductAdmin) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductAdmin) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductAdmin) Restock(ctx context.Context, id uuid.UUID, req catalogapp.RestockRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductAdmin) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
