package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const dateLayout = "2006-01-02"

// FormatYMD renders a date as YYYY-MM-DD, or "" for the zero time.
func FormatYMD(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func ParseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatKB renders a byte count as kibibytes with one decimal, e.g. "12.5 KB".
func FormatKB(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// Truncate keeps the first n runes of s and appends "..." when it cut
// anything.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// DisplayWidth is the terminal column width of the widest line of s, so
// CJK text counts double.
func DisplayWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
