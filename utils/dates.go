// utils/dates.go
package utils

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseDateRange parses calendar dates and widens them to cover the full days:
// [start 00:00:00, end 23:59:59].
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date")
	}
	end, err := time.ParseInLocation(DateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date")
	}
	return BeginningOfDay(start), EndOfDay(end), nil
}
