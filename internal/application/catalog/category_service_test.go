package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories, nil)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Fresh Fruit"})
	require.NoError(t, err)
	assert.Equal(t, "fresh-fruit", resp.Slug)
	assert.True(t, resp.Active)
}

func TestCategoryService_UpdateKeepsSlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories, nil)
	c, err := catalog.NewCategory("Dairy", "")
	require.NoError(t, err)
	categories.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	categories.On("Save", mock.Anything, c).Return(nil)

	name := "Dairy & Eggs"
	inactive := false
	resp, err := svc.Update(context.Background(), c.ID, UpdateCategoryRequest{Name: &name, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", resp.Name)
	assert.Equal(t, "dairy", resp.Slug)
	assert.False(t, resp.Active)
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("empty category", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, nil)
		id := uuid.New()
		categories.On("FindByID", mock.Anything, id).Return(&catalog.Category{}, nil)
		categories.On("HasProducts", mock.Anything, id).Return(false, nil)
		categories.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), id))
		categories.AssertExpectations(t)
	})

	t.Run("category with products", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, nil)
		id := uuid.New()
		categories.On("FindByID", mock.Anything, id).Return(&catalog.Category{}, nil)
		categories.On("HasProducts", mock.Anything, id).Return(true, nil)

		err := svc.Delete(context.Background(), id)
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "HAS_PRODUCTS", derr.Code)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
