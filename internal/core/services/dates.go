package services

import (
	"fmt"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

// checkRange validates both ends of an inclusive report range.
func checkRange(cal *calendar.Calendar, start, end string) error {
	cmp, err := cal.Compare(start, end)
	if err != nil {
		return err
	}
	if cmp > 0 {
		return fmt.Errorf("%w: %s > %s", domain.ErrInvalidRange, start, end)
	}
	return nil
}

func checkDate(date string) error {
	_, err := calendar.Parse(date)
	return err
}

func checkOptionalDate(date *string) error {
	if date == nil || *date == "" {
		return nil
	}
	return checkDate(*date)
}
