package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(a *Authenticator, seen *cart.Owner) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), a.Optional(), CartSession())
	router.GET("/cart", func(c *gin.Context) {
		owner, ok := GetCartOwner(c)
		if ok {
			*seen = owner
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestCartSession_IssuesTokenForAnonymous(t *testing.T) {
	var seen cart.Owner
	router := newCartRouter(NewAuthenticator(newTestJWTService(), nil), &seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	issued := w.Header().Get(CartSessionHeader)
	_, err := uuid.Parse(issued)
	assert.NoError(t, err)
	assert.Equal(t, issued, seen.SessionToken)
	assert.False(t, seen.IsUser())
}

func TestCartSession_ReusesClientToken(t *testing.T) {
	var seen cart.Owner
	router := newCartRouter(NewAuthenticator(newTestJWTService(), nil), &seen)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(CartSessionHeader, "session-abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "session-abc", w.Header().Get(CartSessionHeader))
	assert.Equal(t, "session-abc", seen.SessionToken)
}

func TestCartSession_UserOwnsCart(t *testing.T) {
	jwtService := newTestJWTService()
	var seen cart.Owner
	router := newCartRouter(NewAuthenticator(jwtService, nil), &seen)
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "alice", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	req.Header.Set(CartSessionHeader, "ignored")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, userID, seen.UserID)
	assert.Empty(t, seen.SessionToken)
	assert.Empty(t, w.Header().Get(CartSessionHeader))
}

func TestCartSession_RejectsOversizedToken(t *testing.T) {
	var seen cart.Owner
	router := newCartRouter(NewAuthenticator(newTestJWTService(), nil), &seen)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(CartSessionHeader, strings.Repeat("x", 65))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
