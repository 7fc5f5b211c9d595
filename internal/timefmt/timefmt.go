// Package timefmt renders timestamps as short relative descriptions
// for status output.
package timefmt

import (
	"fmt"
	"time"
)

// Relative describes how long ago t occurred relative to reference.
func Relative(t, reference time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	if t.After(reference) {
		return "just now"
	}

	diff := reference.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hr")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	}
	if t.Year() == reference.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 2006")
}

func plural(n int, unit string) string {
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
