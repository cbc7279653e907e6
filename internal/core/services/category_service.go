package services

import (
	"context"
	"fmt"
	"log"

	"github.com/daftar-app/daftar/internal/core/domain"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

type CategoryInput struct {
	Name  string
	Color string
	Icon  *string
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(input.Name, input.Color, input.Icon, true)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("category service: failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

// ListCustom returns only user-created categories.
func (s *CategoryService) ListCustom(ctx context.Context) ([]*domain.Category, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Category, 0, len(all))
	for _, c := range all {
		if c.IsCustom {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(input.Name, input.Color, input.Icon); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft-deletes the category. Tasks keep their reference and are
// reported under it until reassigned.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// InitializeDefaults seeds the built-in categories when none exist.
func (s *CategoryService) InitializeDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, c := range domain.DefaultCategories() {
		if err := s.repo.Create(ctx, c); err != nil {
			return created, fmt.Errorf("category service: failed to seed %q: %w", c.Name, err)
		}
		created++
	}
	log.Printf("[CATEGORIES] Seeded %d default categories", created)
	return created, nil
}
