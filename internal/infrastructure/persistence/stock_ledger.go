package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLedger implements catalog.StockLedger with a single conditional
// UPDATE per reservation. The WHERE clause makes the availability check and
// the decrement one statement, so concurrent reservations cannot oversell.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Reserve decrements stock if at least quantity units remain
func (l *GormStockLedger) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	result := l.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var product catalog.Product
	if err := l.db.WithContext(ctx).
		Select("id", "name", "stock_quantity").
		First(&product, "id = ?", productID).Error; err != nil {
		return translateNotFound(err, "Product")
	}
	return shared.NewInsufficientStockError(product.Name, quantity, product.StockQuantity)
}

// Release adds quantity units back to stock
func (l *GormStockLedger) Release(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	result := l.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Product")
	}
	return nil
}
