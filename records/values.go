package records

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts is the parse chain for date-like values, tried in order.
// ISO 8601 forms come first, the remaining layouts cover the formats most
// commonly produced by spreadsheet exports.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// IsEmpty reports whether a record value is missing: nil or a string with no
// non-whitespace characters.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Float64 converts a value of any supported numeric type to a float64.
// The second return value reports whether the conversion succeeded.
func Float64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Day parses a date-like value and truncates it to calendar-day granularity
// in UTC. Date comparisons operate on days, never on time of day.
func Day(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return truncateToDay(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateToDay(t), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
