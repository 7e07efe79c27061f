package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// MsgReviewSubmitted is returned after a review is stored
const MsgReviewSubmitted = "Your review has been submitted!"

// Reviewer identifies the signed-in user submitting a review
type Reviewer struct {
	UserID   uuid.UUID
	Username string
}

// SubmitReviewRequest is the review form
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents a stored review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

// SubmitReviewResponse pairs the stored review with a status message
type SubmitReviewResponse struct {
	Message string         `json:"message"`
	Review  ReviewResponse `json:"review"`
}

// ReviewService handles review submission
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.ReviewRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo, logger: logger}
}

// SubmitReview creates or overwrites the reviewer's review of the active
// product with the given slug
func (s *ReviewService) SubmitReview(ctx context.Context, reviewer *Reviewer, slug string, req SubmitReviewRequest) (*SubmitReviewResponse, error) {
	if reviewer == nil {
		return nil, shared.ErrUnauthorized
	}

	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	r, err := review.NewReview(product.ID, reviewer.UserID, reviewer.Username, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Upsert(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("product_id", product.ID.String()),
		zap.String("user_id", reviewer.UserID.String()),
		zap.Int("rating", r.Rating),
	)

	return &SubmitReviewResponse{
		Message: MsgReviewSubmitted,
		Review: ReviewResponse{
			ID:        r.ID,
			ProductID: r.ProductID,
			Name:      r.Name,
			Rating:    r.Rating,
			Comment:   r.Comment,
		},
	}, nil
}
