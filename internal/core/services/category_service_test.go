package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daftar-app/daftar/internal/core/domain"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: User categories are custom", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

		c, err := service.Create(ctx, CategoryInput{Name: "ورزش", Color: "#22c55e"})
		require.NoError(t, err)
		assert.True(t, c.IsCustom)
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Invalid color", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)

		_, err := service.Create(ctx, CategoryInput{Name: "X", Color: "green"})
		assert.ErrorIs(t, err, domain.ErrInvalidColor)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	service := NewCategoryService(repo)

	existing := &domain.Category{ID: "c1", Name: "Old", Color: "#000000"}
	repo.On("GetByID", ctx, "c1").Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)
	repo.On("GetByID", ctx, "missing").Return(nil, domain.ErrCategoryNotFound)

	c, err := service.Update(ctx, "c1", CategoryInput{Name: "New", Color: "#ffffff"})
	require.NoError(t, err)
	assert.Equal(t, "New", c.Name)

	_, err = service.Update(ctx, "missing", CategoryInput{Name: "New", Color: "#ffffff"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryService_ListCustom(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("List", ctx).Return([]*domain.Category{
		{ID: "builtin", IsCustom: false},
		{ID: "mine", IsCustom: true},
	}, nil)

	got, err := service.ListCustom(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].ID)
}

func TestCategoryService_InitializeDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds an empty store", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)
		repo.On("List", ctx).Return([]*domain.Category{}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *domain.Category) bool { return !c.IsCustom })).Return(nil)

		n, err := service.InitializeDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		repo.AssertNumberOfCalls(t, "Create", 5)
	})

	t.Run("Leaves a populated store alone", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)
		repo.On("List", ctx).Return([]*domain.Category{{ID: "x"}}, nil)

		n, err := service.InitializeDefaults(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "Create")
	})
}
