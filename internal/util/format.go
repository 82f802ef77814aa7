// Package util provides shared utility functions used across the application.
package util

import (
	"fmt"
	"time"
)

// FormatSeconds formats a whole-second duration for human-readable display.
// - Under 1 minute: "45s"
// - Under 1 hour: "5m 30s"
// - 1 hour or more: "1h 23m 05s"
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	if total < 3600 {
		return fmt.Sprintf("%dm %02ds", total/60, total%60)
	}
	return fmt.Sprintf("%dh %02dm %02ds", total/3600, total%3600/60, total%60)
}

// FormatSecondsCompact formats a whole-second duration without spaces,
// for table cells and statistics.
func FormatSecondsCompact(total int) string {
	if total < 0 {
		total = 0
	}
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	if total < 3600 {
		return fmt.Sprintf("%dm%ds", total/60, total%60)
	}
	return fmt.Sprintf("%dh%dm", total/3600, total%3600/60)
}

// FormatSecondsLong spells out the units.
// - Under 1 minute: "45 seconds"
// - Under 1 hour: "5 minutes 30 seconds"
// - 1 hour or more: "1 hour 23 minutes"
func FormatSecondsLong(total int) string {
	if total < 0 {
		total = 0
	}
	if total < 60 {
		return fmt.Sprintf("%d %s", total, plural(total, "second"))
	}
	if total < 3600 {
		mins := total / 60
		secs := total % 60
		if secs == 0 {
			return fmt.Sprintf("%d %s", mins, plural(mins, "minute"))
		}
		return fmt.Sprintf("%d %s %d %s", mins, plural(mins, "minute"), secs, plural(secs, "second"))
	}
	hours := total / 3600
	mins := total % 3600 / 60
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	}
	return fmt.Sprintf("%d %s %d %s", hours, plural(hours, "hour"), mins, plural(mins, "minute"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// FormatTimestamp formats a time for display in history tables.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
