package review

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product. There is at most one review per
// (product, user); resubmitting overwrites it.
type Review struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user,priority:2"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`

	// Product is loaded for listings only and never written
	Product *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview validates and builds a review
func NewReview(productID, userID uuid.UUID, name string, rating int, comment string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	verr := shared.NewValidationError("", "Please correct the review")
	if rating < MinRating || rating > MaxRating {
		verr.Code = "INVALID_RATING"
		verr.AddField("rating", "Rating must be between 1 and 5")
	}
	name = strings.TrimSpace(name)
	if len(name) > 100 {
		verr.AddField("name", "Name cannot exceed 100 characters")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Name:       name,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}
