package repository

import (
	"context"

	"github.com/daftar-app/daftar/internal/adapters/cache"
	"github.com/daftar-app/daftar/internal/core/domain"
)

var _ domain.CategoryRepository = (*CachedCategoryRepository)(nil)

const categoryListKey = "all"

// CachedCategoryRepository keeps the category list in Redis. The list is read
// on every task form and report, and changes rarely.
type CachedCategoryRepository struct {
	next  domain.CategoryRepository
	cache *cache.JSONCache
}

func NewCachedCategoryRepository(next domain.CategoryRepository, c *cache.JSONCache) *CachedCategoryRepository {
	return &CachedCategoryRepository{
		next:  next,
		cache: c,
	}
}

func (r *CachedCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if r.cache.Get(ctx, categoryListKey, &categories) {
		return categories, nil
	}

	categories, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, categoryListKey, categories)
	return categories, nil
}

func (r *CachedCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if r.cache.Get(ctx, id, &c) {
		return &c, nil
	}

	found, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, id, found)
	return found, nil
}

func (r *CachedCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.Del(ctx, categoryListKey)
	return nil
}

func (r *CachedCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.cache.Del(ctx, categoryListKey, c.ID)
	return nil
}

func (r *CachedCategoryRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.Del(ctx, categoryListKey, id)
	return r.next.Delete(ctx, id)
}
