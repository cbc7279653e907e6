// Package calendar implements date handling in the Persian (Jalali) calendar.
// Dates travel through the system as zero-padded "YYYY/MM/DD" strings.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format (must be YYYY/MM/DD)")
	ErrInvalidMonth      = errors.New("invalid month (must be 1-12)")
)

var dateRegex = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`)

type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// AddDays moves the date by n days; ptime decides month lengths and leap years.
func (d Date) AddDays(n int) Date {
	t := d.toTime().AddDate(0, 0, n)
	return fromPersian(ptime.New(t))
}

// toTime anchors the date at noon UTC so day arithmetic never lands on a DST edge.
func (d Date) toTime() time.Time {
	return ptime.Date(d.Year, ptime.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC).Time()
}

func fromPersian(pt ptime.Time) Date {
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// MonthLength returns the number of days in the given month of the given year.
func MonthLength(year, month int) int {
	return ptime.Date(year, ptime.Month(month), 1, 12, 0, 0, 0, time.UTC).LastMonthDay().Day()
}

// Parse validates a date string strictly. Days beyond the month length
// (including Esfand 30 in a common year) are rejected.
func Parse(s string) (Date, error) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if year < 1 || month < 1 || month > 12 || day < 1 || day > MonthLength(year, month) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// Calendar resolves "today" against an injectable clock in a fixed location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

type Option func(*Calendar)

func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

func New(loc *time.Location, opts ...Option) *Calendar {
	if loc == nil {
		loc = time.UTC
	}

	c := &Calendar{
		loc: loc,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Calendar) Today() string {
	return c.FromTime(c.now())
}

func (c *Calendar) FromTime(t time.Time) string {
	return fromPersian(ptime.New(t.In(c.loc))).String()
}

func (c *Calendar) Compare(d1, d2 string) (int, error) {
	a, err := Parse(d1)
	if err != nil {
		return 0, err
	}
	b, err := Parse(d2)
	if err != nil {
		return 0, err
	}
	return a.Compare(b), nil
}

func (c *Calendar) AddDays(d string, n int) (string, error) {
	date, err := Parse(d)
	if err != nil {
		return "", err
	}
	return date.AddDays(n).String(), nil
}

func (c *Calendar) IsPast(d string) (bool, error) {
	cmp, err := c.Compare(d, c.Today())
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// Between reports whether d lies in [start, end]. Unparseable input never matches.
func (c *Calendar) Between(d, start, end string) bool {
	date, err := Parse(d)
	if err != nil {
		return false
	}
	s, err := Parse(start)
	if err != nil {
		return false
	}
	e, err := Parse(end)
	if err != nil {
		return false
	}
	return date.Compare(s) >= 0 && date.Compare(e) <= 0
}

func (c *Calendar) MonthRange(year, month int) (string, string, error) {
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if year < 1 {
		return "", "", fmt.Errorf("%w: year %d", ErrInvalidDateFormat, year)
	}

	start := Date{Year: year, Month: month, Day: 1}
	end := Date{Year: year, Month: month, Day: MonthLength(year, month)}
	return start.String(), end.String(), nil
}

func (c *Calendar) CurrentMonthRange() (string, string) {
	today, _ := Parse(c.Today())
	start, end, _ := c.MonthRange(today.Year, today.Month)
	return start, end
}

// DateRange enumerates every calendar day in [start, end], ascending.
// It returns an empty slice when start is after end.
func (c *Calendar) DateRange(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}

	days := []string{}
	for cur := s; cur.Compare(e) <= 0; cur = cur.AddDays(1) {
		days = append(days, cur.String())
	}
	return days, nil
}

// Span counts the days in [start, end] inclusive. It is zero or negative when
// start is after end.
func (c *Calendar) Span(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	days := e.toTime().Sub(s.toTime()).Hours() / 24
	return int(days) + 1, nil
}
