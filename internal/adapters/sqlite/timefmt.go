// Package sqlite contains SQLite implementations of the repository interfaces.
package sqlite

import "time"

// timeFormat matches SQLite's CURRENT_TIMESTAMP text so rows written by the
// application and rows defaulted by the engine bucket identically under
// strftime and compare lexicographically.
const timeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeFormat, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
