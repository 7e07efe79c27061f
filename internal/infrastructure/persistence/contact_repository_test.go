package persistence

import (
	"context"
	"testing"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/contact"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormContactRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Ada", "Grace"} {
		msg, err := contact.NewMessage(name, name+"@example.com", "Delivery", "When do you deliver on Sundays?")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, msg))
	}

	messages, total, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, messages, 2)

	filter := shared.DefaultFilter()
	filter.Search = "grace"
	messages, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Grace", messages[0].Name)
}
