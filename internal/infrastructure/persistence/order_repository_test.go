package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeTestOrder(t *testing.T, userID uuid.UUID, qty int) *order.Order {
	t.Helper()
	o, err := order.PlaceOrder(userID,
		order.DeliveryInfo{Address: "7 Orchard Lane", Phone: "+447700900123"},
		[]order.Line{{ProductID: uuid.New(), ProductName: "Honey", Quantity: qty, UnitPrice: decimal.RequireFromString("5.50")}},
	)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	o := placeTestOrder(t, userID, 2)
	require.NoError(t, repo.Create(ctx, o))

	found, err := repo.FindByIDForUser(ctx, o.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, found.OrderNumber)
	assert.Equal(t, order.OrderStatusPlaced, found.Status)
	require.Len(t, found.Items, 1)
	assert.True(t, decimal.RequireFromString("11.00").Equal(found.TotalAmount))
	assert.True(t, found.TotalAmount.Equal(found.ItemsTotal()))

	_, err = repo.FindByIDForUser(ctx, o.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_DuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first := placeTestOrder(t, uuid.New(), 1)
	require.NoError(t, repo.Create(ctx, first))

	second := placeTestOrder(t, uuid.New(), 1)
	second.OrderNumber = first.OrderNumber
	assert.ErrorIs(t, repo.Create(ctx, second), order.ErrDuplicateOrderNumber)

	second.RegenerateNumber()
	require.NoError(t, repo.Create(ctx, second))
}

func TestGormOrderRepository_FindByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	var numbers []string
	for i := 0; i < 3; i++ {
		o := placeTestOrder(t, userID, i+1)
		o.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, o))
		numbers = append(numbers, o.OrderNumber)
	}
	require.NoError(t, repo.Create(ctx, placeTestOrder(t, uuid.New(), 1)))

	filter := shared.DefaultFilter()
	filter.PageSize = 2
	orders, total, err := repo.FindByUser(ctx, userID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, numbers[2], orders[0].OrderNumber)
	assert.Equal(t, numbers[1], orders[1].OrderNumber)
	assert.Len(t, orders[0].Items, 1)

	all, total, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}
