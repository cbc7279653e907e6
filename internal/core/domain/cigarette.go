package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var (
	ErrCigaretteNotFound = errors.New("cigarette record not found")
	ErrInvalidLimit      = errors.New("daily limit must be greater than zero")
	ErrNothingToRemove   = errors.New("no cigarettes to remove")
	ErrCigaretteConflict = errors.New("cigarette record was modified concurrently")
)

const DefaultCigaretteLimit = 10

// Timestamps is stored as a JSON array of epoch milliseconds.
type Timestamps []int64

func (ts Timestamps) Value() (driver.Value, error) {
	if ts == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int64(ts))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ts *Timestamps) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*ts = Timestamps{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("timestamps: unsupported scan type %T", src)
	}

	if len(raw) == 0 {
		*ts = Timestamps{}
		return nil
	}

	var out []int64
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("timestamps: %w", err)
	}
	if out == nil {
		out = []int64{}
	}
	*ts = out
	return nil
}

// Cigarette is the day-record for one calendar date.
// Count always equals len(Timestamps).
type Cigarette struct {
	ID         string     `json:"id" db:"id"`
	Date       string     `json:"date" db:"date"`
	Count      int        `json:"count" db:"count"`
	DailyLimit int        `json:"daily_limit" db:"daily_limit"`
	Timestamps Timestamps `json:"timestamps" db:"timestamps"`
	Version    int        `json:"version" db:"version"`
	CreatedAt  int64      `json:"created_at" db:"created_at"`
	UpdatedAt  int64      `json:"updated_at" db:"updated_at"`
	DeletedAt  *int64     `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewCigarette(date string, dailyLimit int) (*Cigarette, error) {
	if dailyLimit <= 0 {
		return nil, ErrInvalidLimit
	}

	now := NowMillis()
	return &Cigarette{
		ID:         uuid.New().String(),
		Date:       date,
		Count:      0,
		DailyLimit: dailyLimit,
		Timestamps: Timestamps{},
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (c *Cigarette) Increment(atMillis int64) {
	c.Count++
	c.Timestamps = append(c.Timestamps, atMillis)
	c.UpdatedAt = NowMillis()
}

// Decrement drops the most recent cigarette. The count never goes below zero.
func (c *Cigarette) Decrement() error {
	if c.Count <= 0 {
		c.Count = 0
		c.Timestamps = Timestamps{}
		return ErrNothingToRemove
	}

	c.Count--
	if n := len(c.Timestamps); n > 0 {
		c.Timestamps = c.Timestamps[:n-1]
	}
	c.UpdatedAt = NowMillis()
	return nil
}

func (c *Cigarette) SetLimit(limit int) error {
	if limit <= 0 {
		return ErrInvalidLimit
	}
	c.DailyLimit = limit
	c.UpdatedAt = NowMillis()
	return nil
}

func (c *Cigarette) WithinLimit() bool {
	return c.Count <= c.DailyLimit
}

func (c *Cigarette) Percentage() int {
	return Percent(c.Count, c.DailyLimit)
}

func (c *Cigarette) Validate() error {
	if c.Count < 0 {
		return errors.New("count cannot be negative")
	}
	if c.DailyLimit <= 0 {
		return ErrInvalidLimit
	}
	if len(c.Timestamps) != c.Count {
		return fmt.Errorf("timestamps length %d does not match count %d", len(c.Timestamps), c.Count)
	}
	return nil
}

// Percent returns round(100*part/whole), or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
