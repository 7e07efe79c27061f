//go:build integration

package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresDB starts a throwaway postgres container and applies the SQL migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("freshmart_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrationsDir := migration.FindDir(".")
	require.NotEmpty(t, migrationsDir, "migrations directory not found")
	m, err := migration.New(sqlDB, migrationsDir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgresCheckout_ConcurrentLastUnit(t *testing.T) {
	db := newPostgresDB(t)
	product := seedProduct(t, db, seedCategory(t, db, "Bakery"), "Last Baguette", "3.20", 1)

	const shoppers = 8
	users := make([]uuid.UUID, shoppers)
	for i := range users {
		users[i] = uuid.New()
		fillCart(t, db, users[i], product.ID, 1)
	}

	svc := newCheckoutService(db)
	errs := make([]error, shoppers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Checkout(context.Background(), users[i], delivery, "")
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, stockOf(t, db, product.ID))
}

func TestPostgresStockLedger_CheckConstraint(t *testing.T) {
	db := newPostgresDB(t)
	product := seedProduct(t, db, seedCategory(t, db, "Dairy"), "Butter", "2.00", 1)

	err := db.Exec("UPDATE products SET stock_quantity = -1 WHERE id = ?", product.ID).Error
	assert.Error(t, err, "stock must never go negative")
}
