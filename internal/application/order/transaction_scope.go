package order

import (
	"context"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories a
// checkout touches. Everything done through the repositories handed to fn is
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories bound to the
// current transaction.
type TransactionalRepositories interface {
	Stock() catalog.StockLedger
	Carts() cart.CartRepository
	Orders() order.OrderRepository
}

// NoOpTransactionScope runs fn against plain repositories without a
// transaction. Useful for tests.
type NoOpTransactionScope struct {
	stock  catalog.StockLedger
	carts  cart.CartRepository
	orders order.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stock catalog.StockLedger,
	carts cart.CartRepository,
	orders order.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{stock: stock, carts: carts, orders: orders}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Stock() catalog.StockLedger    { return s.stock }
func (s *NoOpTransactionScope) Carts() cart.CartRepository    { return s.carts }
func (s *NoOpTransactionScope) Orders() order.OrderRepository { return s.orders }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
