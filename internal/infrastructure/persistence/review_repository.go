package persistence

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/review"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Upsert inserts the review or overwrites the one the user already left on
// the product. The stored row keeps its original ID and created_at.
func (r *GormReviewRepository) Upsert(ctx context.Context, rv *review.Review) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "rating", "comment", "updated_at"}),
		}).
		Create(rv).Error
	if err != nil {
		return err
	}

	// rv still carries its fresh ID, which a conflicting insert never stored
	var stored review.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", rv.ProductID, rv.UserID).
		First(&stored).Error; err != nil {
		return err
	}
	*rv = stored
	return nil
}

// FindByProduct lists a product's reviews, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]review.Review, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reviews []review.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindRecent lists the newest reviews across all products
func (r *GormReviewRepository) FindRecent(ctx context.Context, limit int) ([]review.Review, error) {
	var reviews []review.Review
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Summarize returns the rating average, rounded to one decimal, and count
func (r *GormReviewRepository) Summarize(ctx context.Context, productID uuid.UUID) (review.Summary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return review.Summary{}, err
	}

	summary := review.Summary{Count: row.Count}
	if row.Average != nil {
		summary.Average = math.Round(*row.Average*10) / 10
	}
	return summary, nil
}
