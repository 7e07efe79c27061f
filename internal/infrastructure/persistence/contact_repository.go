package persistence

import (
	"context"
	"strings"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/contact"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactRepository implements contact.MessageRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Save stores a message
func (r *GormContactRepository) Save(ctx context.Context, msg *contact.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindAll lists messages, newest first by default
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contact.Message, int64, error) {
	search := func(db *gorm.DB) *gorm.DB {
		if filter.Search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		return db.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?)", pattern, pattern, pattern)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&contact.Message{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []contact.Message
	if err := r.db.WithContext(ctx).
		Scopes(search, paginate(filter, ContactMessageSortFields, "created_at")).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
