package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reviewapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
)

// ReviewSubmitter upserts product reviews
type ReviewSubmitter interface {
	SubmitReview(ctx context.Context, reviewer *reviewapp.Reviewer, slug string, req reviewapp.SubmitReviewRequest) (*reviewapp.SubmitReviewResponse, error)
}

// ReviewHandler handles review submission
type ReviewHandler struct {
	BaseHandler
	reviews ReviewSubmitter
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews ReviewSubmitter) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit creates or replaces the caller's review of the product
func (h *ReviewHandler) Submit(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	userID := middleware.GetJWTUserID(c)
	if claims == nil || userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req reviewapp.SubmitReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	reviewer := &reviewapp.Reviewer{UserID: userID, Username: claims.Username}
	resp, err := h.reviews.SubmitReview(c.Request.Context(), reviewer, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
