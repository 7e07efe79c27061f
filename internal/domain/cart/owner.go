package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// Owner identifies whose cart it is: an authenticated user or an anonymous
// session token issued by the HTTP layer. Exactly one of the two is set.
type Owner struct {
	UserID       uuid.UUID
	SessionToken string
}

// UserOwner returns the owner key for an authenticated user
func UserOwner(userID uuid.UUID) Owner {
	return Owner{UserID: userID}
}

// SessionOwner returns the owner key for an anonymous session
func SessionOwner(token string) Owner {
	return Owner{SessionToken: strings.TrimSpace(token)}
}

// IsUser reports whether the owner is an authenticated user
func (o Owner) IsUser() bool {
	return o.UserID != uuid.Nil
}

// Validate checks that exactly one identity is present
func (o Owner) Validate() error {
	hasUser := o.UserID != uuid.Nil
	hasSession := o.SessionToken != ""
	if hasUser == hasSession {
		return shared.NewDomainError("INVALID_CART_OWNER", "Cart must belong to either a user or a session")
	}
	if len(o.SessionToken) > 64 {
		return shared.NewDomainError("INVALID_CART_OWNER", "Session token is too long")
	}
	return nil
}

// String returns a log-friendly form of the owner
func (o Owner) String() string {
	if o.IsUser() {
		return "user:" + o.UserID.String()
	}
	return "session:" + o.SessionToken
}
