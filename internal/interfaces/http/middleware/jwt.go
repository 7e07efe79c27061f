package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/auth"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/logger"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Authenticator resolves bearer tokens into claims on the gin context
type Authenticator struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthenticator creates an Authenticator
func NewAuthenticator(validator TokenValidator, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{validator: validator, logger: logger}
}

// Optional extracts claims when a valid bearer token is present. A missing
// token leaves the request anonymous; a bad one is rejected so clients do not
// silently fall back to an anonymous cart.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			c.Next()
			return
		}
		if !a.authenticate(c, header) {
			return
		}
		c.Next()
	}
}

// Required rejects requests without a valid bearer token
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) != nil {
			c.Next()
			return
		}
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			a.reject(c, shared.ErrUnauthorized, "Missing authorization header")
			return
		}
		if !a.authenticate(c, header) {
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after Required
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Admin access required", GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context, header string) bool {
	if !strings.HasPrefix(header, BearerPrefix) {
		a.reject(c, auth.ErrInvalidToken, "Invalid authorization header format")
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		a.reject(c, auth.ErrInvalidToken, "Missing token")
		return false
	}

	claims, err := a.validator.ValidateToken(token)
	if err != nil {
		a.reject(c, err, "Token validation failed")
		return false
	}

	c.Set(JWTClaimsKey, claims)
	ctx := c.Request.Context()
	log := logger.FromContext(ctx).With(zap.String("user_id", claims.UserID))
	c.Request = c.Request.WithContext(logger.WithContext(ctx, log))
	return true
}

func (a *Authenticator) reject(c *gin.Context, err error, message string) {
	a.logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID),
		errors.Is(err, auth.ErrTokenNotYetValid):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user's ID, or uuid.Nil
func GetJWTUserID(c *gin.Context) uuid.UUID {
	claims := GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.UID()
	if err != nil {
		return uuid.Nil
	}
	return id
}
