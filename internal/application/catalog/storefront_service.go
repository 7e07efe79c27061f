package catalog

import (
	"context"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// Home page section sizes
const (
	HomeFeaturedLimit    = 8
	HomeBestsellerLimit  = 6
	HomeCategoryLimit    = 4
	HomeReviewLimit      = 6
	RelatedProductsLimit = 4
)

// StorefrontService serves the public, read-only catalog pages
type StorefrontService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	reviewRepo   review.ReviewRepository
	logger       *zap.Logger
}

// NewStorefrontService creates a new StorefrontService
func NewStorefrontService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	reviewRepo review.ReviewRepository,
	logger *zap.Logger,
) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		logger:       logger,
	}
}

// Home returns featured products, bestsellers, a few categories and the
// latest reviews
func (s *StorefrontService) Home(ctx context.Context) (*HomeResponse, error) {
	featured, _, err := s.productRepo.Search(ctx, catalog.ProductQuery{
		ActiveOnly:   true,
		FeaturedOnly: true,
		PageSize:     HomeFeaturedLimit,
	})
	if err != nil {
		return nil, err
	}

	bestsellers, _, err := s.productRepo.Search(ctx, catalog.ProductQuery{
		ActiveOnly:     true,
		BestsellerOnly: true,
		PageSize:       HomeBestsellerLimit,
	})
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll(ctx, true, HomeCategoryLimit)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindRecent(ctx, HomeReviewLimit)
	if err != nil {
		return nil, err
	}

	return &HomeResponse{
		Featured:      ToProductResponses(featured),
		Bestsellers:   ToProductResponses(bestsellers),
		Categories:    ToCategoryResponses(categories),
		RecentReviews: ToReviewResponses(reviews),
	}, nil
}

// Shop lists active products with category, search and sort applied. An
// unknown category slug yields an empty page.
func (s *StorefrontService) Shop(ctx context.Context, filter ShopFilter) (*shared.Paginated[ProductResponse], error) {
	query := catalog.ProductQuery{
		CategorySlug: filter.Category,
		Search:       filter.Search,
		Sort:         catalog.ParseProductSort(filter.Sort),
		ActiveOnly:   true,
		Page:         filter.Page,
		PageSize:     catalog.DefaultPageSize,
	}.Normalize()

	products, total, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, query.Page, query.PageSize)
	return &result, nil
}

// ProductDetail returns an active product by slug together with its
// reviews, rating summary and related products
func (s *StorefrontService) ProductDetail(ctx context.Context, slug string) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviewRepo.Summarize(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, product.ID, 0)
	if err != nil {
		return nil, err
	}

	related, err := s.productRepo.FindRelated(ctx, product, RelatedProductsLimit)
	if err != nil {
		s.logger.Warn("failed to load related products",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
		related = nil
	}

	return &ProductDetailResponse{
		Product:     ToProductResponse(product),
		Reviews:     ToReviewResponses(reviews),
		AvgRating:   summary.Average,
		ReviewCount: summary.Count,
		Related:     ToProductResponses(related),
	}, nil
}

// ListCategories returns every active category
func (s *StorefrontService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, true, 0)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}
