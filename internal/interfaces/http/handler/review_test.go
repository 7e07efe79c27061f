package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	reviewapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewRouter(svc ReviewSubmitter) http.Handler {
	r, authn := newTestEngine()
	h := NewReviewHandler(svc)
	r.POST("/products/:slug/reviews", authn.Required(), h.Submit)
	return r
}

func TestReviewHandler_Submit(t *testing.T) {
	svc := new(MockReviewSubmitter)
	userID := uuid.New()
	svc.On("SubmitReview", mock.Anything, &reviewapp.Reviewer{UserID: userID, Username: "alice"}, "ripe-mango",
		reviewapp.SubmitReviewRequest{Rating: 5, Comment: "Sweet"}).
		Return(&reviewapp.SubmitReviewResponse{
			Message: "Thank you for your review!",
			Review:  reviewapp.ReviewResponse{Name: "alice", Rating: 5, Comment: "Sweet"},
		}, nil)

	w := doJSON(newReviewRouter(svc), http.MethodPost, "/products/ripe-mango/reviews",
		map[string]any{"rating": 5, "comment": "Sweet"},
		map[string]string{"Authorization": bearer(t, userID, "alice", "")})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your review!")
	svc.AssertExpectations(t)
}

func TestReviewHandler_SubmitRejectsOutOfRangeRating(t *testing.T) {
	svc := new(MockReviewSubmitter)

	w := doJSON(newReviewRouter(svc), http.MethodPost, "/products/ripe-mango/reviews",
		map[string]any{"rating": 6},
		map[string]string{"Authorization": bearer(t, uuid.New(), "alice", "")})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "rating", resp.Error.Details[0].Field)
	svc.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_SubmitUnknownProduct(t *testing.T) {
	svc := new(MockReviewSubmitter)
	svc.On("SubmitReview", mock.Anything, mock.Anything, "gone", mock.Anything).
		Return(nil, shared.NewNotFoundError("Product"))

	w := doJSON(newReviewRouter(svc), http.MethodPost, "/products/gone/reviews",
		map[string]any{"rating": 3},
		map[string]string{"Authorization": bearer(t, uuid.New(), "alice", "")})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decode(t, w).Error.Code)
}

func TestReviewHandler_SubmitRequiresAuth(t *testing.T) {
	w := doJSON(newReviewRouter(new(MockReviewSubmitter)), http.MethodPost, "/products/ripe-mango/reviews",
		map[string]any{"rating": 4}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
