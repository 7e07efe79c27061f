package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByOwner loads the owner's cart with its lines and their current products
func (r *GormCartRepository) FindByOwner(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Product")
	if owner.IsUser() {
		query = query.Where("user_id = ?", owner.UserID)
	} else {
		query = query.Where("session_token = ?", owner.SessionToken)
	}

	var c cart.Cart
	if err := query.First(&c).Error; err != nil {
		return nil, translateNotFound(err, "Cart")
	}
	return &c, nil
}

// Save upserts the cart header and makes the stored lines match c.Items
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(c.Items))
		for _, item := range c.Items {
			keep = append(keep, item.ID)
		}
		stale := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		for i := range c.Items {
			c.Items[i].CartID = c.ID
			if err := tx.Omit(clause.Associations).Save(&c.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if IsUniqueViolation(err) {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Cart was changed by another request")
	}
	return err
}

// ClearItems deletes every line of the cart
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cart.CartItem{}).Error
}

// PurgeAbandoned deletes anonymous carts, and their lines, untouched since
// idleSince. User carts are never purged.
func (r *GormCartRepository) PurgeAbandoned(ctx context.Context, idleSince time.Time) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Session(&gorm.Session{NewDB: true}).
			Model(&cart.Cart{}).
			Select("id").
			Where("user_id IS NULL AND updated_at < ?", idleSince)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id IS NULL AND updated_at < ?", idleSince).Delete(&cart.Cart{})
		purged = res.RowsAffected
		return res.Error
	})
	return purged, err
}
