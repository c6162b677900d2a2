package services

import (
	"strings"
	"time"
)

const datetimeFormat = "2006-01-02 15:04:05"

// Accepted on input; everything is stored as datetimeFormat in UTC.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	datetimeFormat,
	"2006-01-02",
}

// normalizeTimestamp turns a caller-supplied timestamp into the canonical
// UTC "YYYY-MM-DD HH:MM:SS" form. Empty or unparseable input normalizes to
// nil rather than an error; malformed timestamps are dropped, not rejected.
func normalizeTimestamp(input string) *string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			s := t.UTC().Format(datetimeFormat)
			return &s
		}
	}
	return nil
}

func normalizeTimestampPtr(input *string) *string {
	if input == nil {
		return nil
	}
	return normalizeTimestamp(*input)
}

// normalizeTimestampValue handles the loosely-typed patch path, where the
// value arrives as arbitrary JSON. Anything that is not a parseable string
// becomes nil.
func normalizeTimestampValue(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if normalized := normalizeTimestamp(s); normalized != nil {
		return *normalized
	}
	return nil
}
