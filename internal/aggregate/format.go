package aggregate

import (
	"fmt"
	"math"
	"time"
)

// Placeholder is shown for values the producer did not record.
const Placeholder = "-"

// FormatDuration renders milliseconds as whole ms below one second, whole seconds
// below one minute and whole minutes above that.
func FormatDuration(ms float64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", int64(math.Round(ms)))
	case ms < 60000:
		return fmt.Sprintf("%ds", int64(math.Round(ms/1000)))
	default:
		return fmt.Sprintf("%dm", int64(math.Round(ms/60000)))
	}
}

// FormatDurationPtr is FormatDuration for nullable durations.
func FormatDurationPtr(ms *int64) string {
	if ms == nil {
		return Placeholder
	}
	return FormatDuration(float64(*ms))
}

// FormatTimestamp renders t as a short local date and time.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	if t.IsZero() {
		return "Invalid date"
	}
	return t.In(time.Local).Format("Jan 2, 15:04:05")
}

// FormatDateKey renders a daily bucket key as a short date, or "Invalid date" when
// the key does not parse.
func FormatDateKey(key string) string {
	t, err := time.ParseInLocation(DateLayout, key, time.Local)
	if err != nil {
		return "Invalid date"
	}
	return t.Format("Jan 2")
}
