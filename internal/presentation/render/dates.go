// Package render contains pure text transforms applied to digest content
// before it is displayed.
package render

import (
	"fmt"
	"strings"
	"time"
)

// Accepted timestamp layouts, most specific first. The digest backend
// normalizes published dates to ISO with a trailing Z, but feeds leak
// zone-less and date-only variants through.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-like timestamp. It never fails loudly;
// the second return value reports whether parsing succeeded.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// RelativeOrAbsolute formats a timestamp relative to now for recent dates
// and as an absolute date once it is a week old. Malformed or missing
// input yields an empty string; the function is total and never panics.
//
// Buckets, first match wins:
//
//	< 1 hour        "N minute(s) ago"
//	< 48 hours      "N hour(s) ago"
//	48-71 hours     "Yesterday"
//	< 7 days        "N day(s) ago"
//	>= 7 days       "Apr 3, 2025"
func RelativeOrAbsolute(value string, now time.Time) string {
	ts, ok := ParseTimestamp(value)
	if !ok {
		return ""
	}

	elapsed := now.Sub(ts)
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int(elapsed / time.Minute)
	hours := int(elapsed / time.Hour)
	days := int(elapsed / (24 * time.Hour))

	switch {
	case minutes < 60:
		return agoText(minutes, "minute")
	case hours < 48:
		return agoText(hours, "hour")
	case days < 3:
		return "Yesterday"
	case days < 7:
		return agoText(days, "day")
	default:
		return ts.Format("Jan 2, 2006")
	}
}

func agoText(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
