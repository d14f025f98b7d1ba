// Package timefmt renders post timestamps for display.
package timefmt

import (
	"fmt"
	"time"
)

// AbsoluteLayout is used once a timestamp is 30 days old or more.
const AbsoluteLayout = "2006-01-02"

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	month  = 30 * day
)

// Relative describes createdAt as seen at now. Timestamps in the future are
// reported as "just now".
func Relative(createdAt, now time.Time) string {
	elapsed := int64(now.Sub(createdAt) / time.Second)

	switch {
	case elapsed < minute:
		return "just now"
	case elapsed < hour:
		return ago(elapsed/minute, "minute")
	case elapsed < day:
		return ago(elapsed/hour, "hour")
	case elapsed < month:
		return ago(elapsed/day, "day")
	default:
		return Absolute(createdAt)
	}
}

func Absolute(t time.Time) string {
	return t.Format(AbsoluteLayout)
}

func ago(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
