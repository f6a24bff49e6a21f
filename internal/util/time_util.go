package util

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse month key %q: %w", key, err)
	}
	return t, nil
}

// NextMonthKey returns the month key n months after the given key. It
// panics on malformed keys, which only the core itself produces.
func NextMonthKey(key string, n int) string {
	t, err := ParseMonthKey(key)
	if err != nil {
		panic(err)
	}
	return MonthKey(t.AddDate(0, n, 0))
}
