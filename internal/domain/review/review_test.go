package review

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	productID, userID := uuid.New(), uuid.New()

	for rating := MinRating; rating <= MaxRating; rating++ {
		r, err := NewReview(productID, userID, "Ann", rating, " tasty ")
		require.NoError(t, err)
		assert.Equal(t, rating, r.Rating)
		assert.Equal(t, "tasty", r.Comment)
	}

	for _, rating := range []int{-1, 0, 6, 10} {
		_, err := NewReview(productID, userID, "Ann", rating, "")
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr), "rating %d", rating)
		assert.Equal(t, "INVALID_RATING", verr.Code)
		assert.Contains(t, verr.Fields, "rating")
	}

	_, err := NewReview(productID, uuid.Nil, "Ann", 3, "")
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}
