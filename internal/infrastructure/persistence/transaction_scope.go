package persistence

import (
	"context"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/application/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	domainorder "github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements order.TransactionScope using GORM transactions.
// Every repository handed to the callback shares one database transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. It commits when fn returns
// nil and rolls back otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos order.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Stock() catalog.StockLedger {
	return NewGormStockLedger(r.tx)
}

func (r *gormTransactionalRepositories) Carts() cart.CartRepository {
	return NewGormCartRepository(r.tx)
}

func (r *gormTransactionalRepositories) Orders() domainorder.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ order.TransactionScope = (*GormTransactionScope)(nil)
var _ order.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
