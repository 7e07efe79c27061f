package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order together with its items. Inside an outer
// transaction this runs under a savepoint, so a number collision leaves the
// outer transaction usable for another attempt.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if IsUniqueViolation(err) {
		return order.ErrDuplicateOrderNumber
	}
	return err
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.withItems(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "Order")
	}
	return &o, nil
}

// FindByIDForUser finds an order only if userID placed it. Another user's
// order is reported as not found.
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.withItems(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error; err != nil {
		return nil, translateNotFound(err, "Order")
	}
	return &o, nil
}

// FindByUser lists a user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return orderFilter(filter)(db.Where("user_id = ?", userID))
	}
	return r.list(ctx, filter, scope)
}

// FindAll lists all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	return r.list(ctx, filter, orderFilter(filter))
}

func (r *GormOrderRepository) list(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]order.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []order.Order
	if err := r.withItems(ctx).
		Scopes(scope, paginate(filter, OrderSortFields, "created_at")).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.product_name ASC")
	})
}

// orderFilter applies search and status filters
func orderFilter(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			db = db.Where("order_number LIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
		}
		if status, ok := filter.Filters["status"]; ok && status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}
}
