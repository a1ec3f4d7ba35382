// Package datetime provides date and time utility functions.
package datetime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
)

const (
	// DateLayout is the ISO-8601 calendar date format used for input and output.
	DateLayout = constants.DateLayout
)

// Date is a calendar date without a time-of-day component. It serialises as
// "YYYY-MM-DD" in JSON and YAML output.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight UTC of the same calendar day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the date in DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// MustParseDate is MustParseTime for DateLayout, returning a Date.
func MustParseDate(dateStr string) Date {
	return NewDate(MustParseTime(DateLayout, dateStr))
}

// ParseDate parses an ISO-8601 calendar date ("2024-01-31").
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return NewDate(t), nil
}

// PeriodDate returns the date of the given 1-based payment period. Periods
// are a fixed constants.PeriodStrideDays apart rather than calendar months.
func PeriodDate(start Date, period int) Date {
	return Date{Time: start.AddDate(0, 0, constants.PeriodStrideDays*(period-1))}
}
