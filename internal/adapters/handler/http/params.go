package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daftar-app/daftar/internal/core/calendar"
)

const maxRangeDays = 366

// readRange reads the start and end query parameters. Both default to the
// bounds of the current month.
func readRange(c *gin.Context, cal *calendar.Calendar) (string, string, error) {
	monthStart, monthEnd := cal.CurrentMonthRange()
	start := c.DefaultQuery("start", monthStart)
	end := c.DefaultQuery("end", monthEnd)

	span, err := cal.Span(start, end)
	if err != nil {
		return "", "", err
	}
	if span > maxRangeDays {
		return "", "", fmt.Errorf("%w: %d days", errRangeTooLarge, span)
	}
	return start, end, nil
}

// pathDate builds a date from the :year/:month/:day path segments. Segments
// need not be zero-padded.
func pathDate(c *gin.Context) (string, error) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	day, errD := strconv.Atoi(c.Param("day"))
	if errY != nil || errM != nil || errD != nil {
		return "", fmt.Errorf("%w: %s/%s/%s", calendar.ErrInvalidDateFormat, c.Param("year"), c.Param("month"), c.Param("day"))
	}

	date := calendar.Date{Year: year, Month: month, Day: day}.String()
	if _, err := calendar.Parse(date); err != nil {
		return "", err
	}
	return date, nil
}

func pathYearMonth(c *gin.Context) (int, int, error) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil {
		return 0, 0, fmt.Errorf("%w: %s/%s", calendar.ErrInvalidMonth, c.Param("year"), c.Param("month"))
	}
	return year, month, nil
}
