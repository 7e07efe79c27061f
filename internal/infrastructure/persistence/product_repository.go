package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Product")
	}
	return &product, nil
}

// FindActiveBySlug finds an active product by slug
func (r *GormProductRepository) FindActiveBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		return nil, translateNotFound(err, "Product")
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search lists products matching the query and returns the total count
func (r *GormProductRepository) Search(ctx context.Context, query catalog.ProductQuery) ([]catalog.Product, int64, error) {
	query = query.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Scopes(productFilter(query)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Scopes(productFilter(query)).
		Order(productOrder(query.Sort)).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindRelated finds active products sharing the category, excluding the product itself
func (r *GormProductRepository) FindRelated(ctx context.Context, product *catalog.Product, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND is_active = ?", product.CategoryID, product.ID, true).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product. The category association is never written.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// UpdateDetails updates an existing product without touching stock_quantity,
// so a concurrent Reserve is never overwritten
func (r *GormProductRepository) UpdateDetails(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit(clause.Associations, "id", "stock_quantity", "created_at").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Product")
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Product")
	}
	return nil
}

// ExistsBySlug checks if a slug is taken by another product
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// productFilter applies the listing filters without ordering or pagination
func productFilter(q catalog.ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.ActiveOnly {
			db = db.Where("products.is_active = ?", true)
		}
		if q.FeaturedOnly {
			db = db.Where("products.featured = ?", true)
		}
		if q.BestsellerOnly {
			db = db.Where("products.is_bestseller = ?", true)
		}
		if q.CategorySlug != "" {
			db = db.Where("products.category_id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Model(&catalog.Category{}).
					Select("id").
					Where("slug = ?", q.CategorySlug))
		}
		if search := strings.TrimSpace(q.Search); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			db = db.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", pattern, pattern)
		}
		return db
	}
}

// productOrder maps a listing sort to its ORDER BY clause. Name breaks ties so
// pagination is stable.
func productOrder(sort catalog.ProductSort) string {
	switch sort {
	case catalog.SortByPriceLow:
		return "products.price ASC, products.name ASC"
	case catalog.SortByPriceHigh:
		return "products.price DESC, products.name ASC"
	case catalog.SortByNewest:
		return "products.created_at DESC, products.name ASC"
	default:
		return "products.name ASC"
	}
}
