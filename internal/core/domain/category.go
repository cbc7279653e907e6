package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameEmpty   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name is too long (max 50 chars)")
	ErrInvalidColor        = errors.New("invalid color format (must be #RRGGBB)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const MaxCategoryNameLen = 50

type Category struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Color     string  `json:"color" db:"color"`
	Icon      *string `json:"icon,omitempty" db:"icon"`
	IsCustom  bool    `json:"is_custom" db:"is_custom"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
	DeletedAt *int64  `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateCategory(name, color string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrCategoryNameEmpty
	}
	if len([]rune(trimmed)) > MaxCategoryNameLen {
		return "", ErrCategoryNameTooLong
	}
	if !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}
	return trimmed, nil
}

func NewCategory(name, color string, icon *string, isCustom bool) (*Category, error) {
	cleanName, err := validateCategory(name, color)
	if err != nil {
		return nil, err
	}

	now := NowMillis()
	return &Category{
		ID:        uuid.New().String(),
		Name:      cleanName,
		Color:     color,
		Icon:      icon,
		IsCustom:  isCustom,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Category) Update(name, color string, icon *string) error {
	cleanName, err := validateCategory(name, color)
	if err != nil {
		return err
	}

	c.Name = cleanName
	c.Color = color
	c.Icon = icon
	c.UpdatedAt = NowMillis()
	return nil
}

func (c *Category) SoftDelete() {
	if c.DeletedAt != nil {
		return
	}
	now := NowMillis()
	c.DeletedAt = &now
	c.UpdatedAt = now
}

// DefaultCategories are the built-in categories seeded on first start.
func DefaultCategories() []*Category {
	defaults := []struct {
		name, color, icon string
	}{
		{"کار", "#6366f1", "briefcase"},
		{"شخصی", "#8b5cf6", "user"},
		{"سلامت", "#10b981", "heart"},
		{"آموزش", "#3b82f6", "book"},
		{"سرگرمی", "#f59e0b", "film"},
	}

	out := make([]*Category, 0, len(defaults))
	for _, d := range defaults {
		icon := d.icon
		c, _ := NewCategory(d.name, d.color, &icon, false)
		out = append(out, c)
	}
	return out
}
