// Package format renders times and durations for listings.
package format

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables that pick the display formats.
const (
	DateFormatEnv = "CRUN_DATE_FORMAT"
	TimeFormatEnv = "CRUN_TIME_FORMAT"
)

var getenv = os.Getenv

// DateTime formats a time with both date and time.
// Example output: "2024-01-23 15:04" or "01/23/2024 3:04 PM"
func DateTime(t time.Time) string {
	return Date(t) + " " + Time(t)
}

// Date formats only the date portion.
func Date(t time.Time) string {
	return t.Local().Format(dateLayout())
}

// Time formats only the time portion.
func Time(t time.Time) string {
	return t.Local().Format(timeLayout())
}

// Duration renders d rounded to a readable precision: "850ms", "12.4s",
// "3m05s", "1h02m".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return "-"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		m := d / time.Minute
		s := (d % time.Minute) / time.Second
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		h := d / time.Hour
		m := (d % time.Hour) / time.Minute
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func dateLayout() string {
	switch getenv(DateFormatEnv) {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "dd/mm/yyyy":
		return "02/01/2006"
	case "", "yyyy-mm-dd":
		return "2006-01-02"
	default:
		// Assume it's a custom Go time format (e.g., "Jan 02")
		return getenv(DateFormatEnv)
	}
}

func timeLayout() string {
	switch getenv(TimeFormatEnv) {
	case "12h":
		return "3:04 PM"
	default:
		return "15:04"
	}
}
