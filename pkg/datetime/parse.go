// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
)

const (
	// DateLayout is the format expected for purchase dates.
	DateLayout = constants.DateLayout

	// MonthLayout is the shorthand year-month format.
	MonthLayout = constants.MonthLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a purchase date. Full dates (2006-01-02), year-month
// shorthand (2006-01) and RFC 3339 timestamps are accepted.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{DateLayout, MonthLayout, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected %s or %s", value, DateLayout, MonthLayout)
}

// YearAndMonth returns the calendar year and the zero-based month
// (January = 0) of the given date.
func YearAndMonth(t time.Time) (int, int) {
	return t.Year(), int(t.Month()) - 1
}

// RemainingMonthsFraction returns the share of the year left after the
// zero-based purchase month, counting the purchase month itself.
func RemainingMonthsFraction(zeroBasedMonth int) float64 {
	return float64(constants.MonthsPerYear-zeroBasedMonth) / constants.MonthsPerYear
}

// Today truncates the given instant to midnight UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
