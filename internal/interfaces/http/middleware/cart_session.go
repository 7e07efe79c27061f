package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/dto"
)

const cartOwnerKey = "cart_owner"

// CartSession resolves the cart owner for the request. Authenticated callers
// own their user cart. Anonymous callers present X-Cart-Session; when absent a
// fresh token is issued and echoed in the response header.
// Must run after Authenticator.Optional.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetJWTUserID(c); userID != uuid.Nil {
			c.Set(cartOwnerKey, cart.UserOwner(userID))
			c.Next()
			return
		}

		token := c.GetHeader(CartSessionHeader)
		if token == "" {
			token = uuid.NewString()
		}
		owner := cart.SessionOwner(token)
		if err := owner.Validate(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Invalid cart session", GetRequestID(c),
			))
			return
		}

		c.Writer.Header().Set(CartSessionHeader, owner.SessionToken)
		c.Set(cartOwnerKey, owner)
		c.Next()
	}
}

// GetCartOwner returns the owner resolved by CartSession
func GetCartOwner(c *gin.Context) (cart.Owner, bool) {
	v, ok := c.Get(cartOwnerKey)
	if !ok {
		return cart.Owner{}, false
	}
	owner, ok := v.(cart.Owner)
	return owner, ok
}
