package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daftar-app/daftar/internal/core/domain"
)

const categoryColumns = `id, name, color, icon, is_custom, created_at, updated_at, deleted_at`

type SQLCategoryRepository struct {
	db *sqlx.DB
}

func NewSQLCategoryRepository(db *sqlx.DB) *SQLCategoryRepository {
	return &SQLCategoryRepository{db: db}
}

func (r *SQLCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO categories (` + categoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`)

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Color, c.Icon, c.IsCustom, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: insert category failed: %w", err)
	}
	return nil
}

func (r *SQLCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c domain.Category
	query := r.db.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE id = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("repository: get category failed: %w", err)
	}
	return &c, nil
}

func (r *SQLCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	out := []*domain.Category{}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE deleted_at IS NULL ORDER BY is_custom ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("repository: list categories failed: %w", err)
	}
	return out, nil
}

func (r *SQLCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		UPDATE categories SET name = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, c.Name, c.Color, c.Icon, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("repository: update category failed: %w", err)
	}
	return expectOneRow(res, domain.ErrCategoryNotFound)
}

func (r *SQLCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := domain.NowMillis()
	query := r.db.Rebind(`UPDATE categories SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("repository: delete category failed: %w", err)
	}
	return expectOneRow(res, domain.ErrCategoryNotFound)
}
