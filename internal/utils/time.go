package utils

import (
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutClock = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// ParseClock parses HH:MM (24h, zero padded).
func ParseClock(s string) (time.Time, error) {
	return time.Parse(layoutClock, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}
