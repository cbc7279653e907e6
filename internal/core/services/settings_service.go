package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/daftar-app/daftar/internal/core/domain"
)

type SettingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// Get returns the stored settings, or the defaults when none are stored yet.
func (s *SettingsService) Get(ctx context.Context) (domain.AppSettings, error) {
	row, err := s.repo.Get(ctx, domain.SettingsKey)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		return domain.DefaultSettings(), err
	}

	settings, err := domain.DecodeSettings(row.Value)
	if err != nil {
		log.Printf("[SETTINGS] Stored settings are corrupted, using defaults: %v", err)
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return current, err
	}

	merged, err := current.Merge(patch)
	if err != nil {
		return current, err
	}

	if err := s.save(ctx, merged); err != nil {
		return current, err
	}
	return merged, nil
}

// Initialize stores the defaults when no settings row exists.
func (s *SettingsService) Initialize(ctx context.Context) error {
	_, err := s.repo.Get(ctx, domain.SettingsKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return err
	}
	return s.save(ctx, domain.DefaultSettings())
}

// DefaultCigaretteLimit is the limit applied to newly created day-records.
func (s *SettingsService) DefaultCigaretteLimit(ctx context.Context) int {
	settings, err := s.Get(ctx)
	if err != nil {
		log.Printf("[SETTINGS] Falling back to default cigarette limit: %v", err)
	}
	if settings.DefaultCigaretteLimit <= 0 {
		return domain.DefaultCigaretteLimit
	}
	return settings.DefaultCigaretteLimit
}

func (s *SettingsService) save(ctx context.Context, settings domain.AppSettings) error {
	value, err := settings.Encode()
	if err != nil {
		return fmt.Errorf("settings service: failed to encode: %w", err)
	}

	now := domain.NowMillis()
	row := &domain.Settings{
		ID:        uuid.NewString(),
		Key:       domain.SettingsKey,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("settings service: failed to save: %w", err)
	}
	return nil
}
