package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrInvalidSettings  = errors.New("invalid settings")
)

const (
	SettingsKey = "app_settings"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings is the stored row: a key and a serialized AppSettings blob.
type Settings struct {
	ID        string `json:"id" db:"id"`
	Key       string `json:"key" db:"key"`
	Value     string `json:"value" db:"value"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

type NotificationSettings struct {
	Enabled           bool `json:"enabled"`
	Sound             bool `json:"sound"`
	Vibration         bool `json:"vibration"`
	DailySummary      bool `json:"daily_summary"`
	TaskReminders     bool `json:"task_reminders"`
	DeadlineReminders bool `json:"deadline_reminders"`
	CigaretteWarnings bool `json:"cigarette_warnings"`
}

type DisplaySettings struct {
	SortBy       string `json:"sort_by"`
	ItemsPerPage int    `json:"items_per_page"`
	CompactView  bool   `json:"compact_view"`
	Theme        string `json:"theme"`
}

type AppSettings struct {
	Notifications         NotificationSettings `json:"notifications"`
	Display               DisplaySettings      `json:"display"`
	Language              string               `json:"language"`
	DefaultTaskPriority   string               `json:"default_task_priority"`
	DefaultCigaretteLimit int                  `json:"default_cigarette_limit"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Notifications: NotificationSettings{
			Enabled:           true,
			Sound:             true,
			Vibration:         true,
			DailySummary:      true,
			TaskReminders:     true,
			DeadlineReminders: true,
			CigaretteWarnings: true,
		},
		Display: DisplaySettings{
			SortBy:       "date",
			ItemsPerPage: 20,
			CompactView:  false,
			Theme:        ThemeDark,
		},
		Language:              "fa",
		DefaultTaskPriority:   PriorityMedium,
		DefaultCigaretteLimit: DefaultCigaretteLimit,
	}
}

// SettingsPatch is a partial update; nil fields keep their current value.
type SettingsPatch struct {
	Notifications *NotificationsPatch `json:"notifications,omitempty"`
	Display       *DisplayPatch       `json:"display,omitempty"`

	Language              *string `json:"language,omitempty"`
	DefaultTaskPriority   *string `json:"default_task_priority,omitempty"`
	DefaultCigaretteLimit *int    `json:"default_cigarette_limit,omitempty"`
}

type NotificationsPatch struct {
	Enabled           *bool `json:"enabled,omitempty"`
	Sound             *bool `json:"sound,omitempty"`
	Vibration         *bool `json:"vibration,omitempty"`
	DailySummary      *bool `json:"daily_summary,omitempty"`
	TaskReminders     *bool `json:"task_reminders,omitempty"`
	DeadlineReminders *bool `json:"deadline_reminders,omitempty"`
	CigaretteWarnings *bool `json:"cigarette_warnings,omitempty"`
}

type DisplayPatch struct {
	SortBy       *string `json:"sort_by,omitempty"`
	ItemsPerPage *int    `json:"items_per_page,omitempty"`
	CompactView  *bool   `json:"compact_view,omitempty"`
	Theme        *string `json:"theme,omitempty"`
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Merge applies the patch on top of s and validates the result.
func (s AppSettings) Merge(p SettingsPatch) (AppSettings, error) {
	out := s

	if n := p.Notifications; n != nil {
		setIf(&out.Notifications.Enabled, n.Enabled)
		setIf(&out.Notifications.Sound, n.Sound)
		setIf(&out.Notifications.Vibration, n.Vibration)
		setIf(&out.Notifications.DailySummary, n.DailySummary)
		setIf(&out.Notifications.TaskReminders, n.TaskReminders)
		setIf(&out.Notifications.DeadlineReminders, n.DeadlineReminders)
		setIf(&out.Notifications.CigaretteWarnings, n.CigaretteWarnings)
	}

	if d := p.Display; d != nil {
		setIf(&out.Display.SortBy, d.SortBy)
		setIf(&out.Display.ItemsPerPage, d.ItemsPerPage)
		setIf(&out.Display.CompactView, d.CompactView)
		setIf(&out.Display.Theme, d.Theme)
	}

	setIf(&out.Language, p.Language)
	setIf(&out.DefaultTaskPriority, p.DefaultTaskPriority)
	setIf(&out.DefaultCigaretteLimit, p.DefaultCigaretteLimit)

	if err := out.Validate(); err != nil {
		return s, err
	}
	return out, nil
}

func (s AppSettings) Validate() error {
	if s.DefaultCigaretteLimit <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, ErrInvalidLimit)
	}
	if !ValidPriority(s.DefaultTaskPriority) {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, ErrInvalidPriority)
	}
	if s.Display.ItemsPerPage <= 0 {
		return fmt.Errorf("%w: items per page must be positive", ErrInvalidSettings)
	}
	if s.Display.Theme != ThemeDark && s.Display.Theme != ThemeLight {
		return fmt.Errorf("%w: theme must be dark or light", ErrInvalidSettings)
	}
	return nil
}

func (s AppSettings) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSettings parses a stored blob. Keys missing from older blobs keep
// their default values.
func DecodeSettings(value string) (AppSettings, error) {
	out := DefaultSettings()
	if value == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return DefaultSettings(), fmt.Errorf("decoding settings: %w", err)
	}
	return out, nil
}
