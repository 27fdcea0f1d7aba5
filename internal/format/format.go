// Package format renders dates, relative times and counts for display.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	dateLayout      = "Jan 02, 2006"
	timestampLayout = "02 Jan 2006 - 15:04"
)

// Date renders an RFC3339 timestamp such as a profile activation date.
func Date(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "Invalid Date Format"
	}
	return t.Format(dateLayout)
}

// TimeSince renders how long ago s happened relative to now. Anything older
// than a week is shown as an absolute UTC timestamp.
func TimeSince(s string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "Invalid Date"
	}
	return Since(t, now)
}

func Since(t, now time.Time) string {
	d := now.Sub(t)
	days := int(d.Hours()) / 24
	rem := d - time.Duration(days)*24*time.Hour

	switch {
	case days > 7:
		return t.UTC().Format(timestampLayout)
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	case days == 1:
		return "1 day ago"
	case rem >= time.Hour:
		return fmt.Sprintf("%d hours ago", int(rem.Hours()))
	case rem >= time.Minute:
		return fmt.Sprintf("%d minutes ago", int(rem.Minutes()))
	default:
		return "just now"
	}
}

// Thousands inserts comma separators: 1234567 -> "1,234,567".
func Thousands(n int) string {
	return humanize.Comma(int64(n))
}

// Rank renders a leaderboard position, or "" for an unranked player.
func Rank(pos *int) string {
	if pos == nil {
		return ""
	}
	return Thousands(*pos)
}
