package util //nolint:revive // package name util hosts shared formatting helpers used across report templates

import (
	"fmt"
	"time"
)

// FormatMinutes formats an elapsed-minutes value for display. Returns "N/A"
// when the value is unknown.
func FormatMinutes(min *float64) string {
	if min == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f min", *min)
}

// FormatTime formats a timestamp for display, handling the unknown case.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatTimeValue formats a non-nullable timestamp for display.
func FormatTimeValue(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// OrNA returns the string or "N/A" when empty.
func OrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
