package content

import (
	"strings"
	"time"
)

// DisplayDateLayout is how dates appear on cards.
const DisplayDateLayout = "January 2, 2006"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads the first candidate that holds a parseable date. Data
// collection dates arrive wrapped as {"$date": "..."}.
func ParseDate(rec Record, candidates ...string) (time.Time, bool) {
	for _, name := range candidates {
		v, ok := Lookup(rec, name)
		if !ok {
			continue
		}
		if m, ok := asMap(v); ok {
			v = m["$date"]
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, ok := parseDateString(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate is ParseDate rendered with DisplayDateLayout, or "".
func FormatDate(rec Record, candidates ...string) string {
	t, ok := ParseDate(rec, candidates...)
	if !ok {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
