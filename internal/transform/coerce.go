// Package transform implements the cleaning stage of the sales ETL: value
// coercion, per-entity cleaning, line-item aggregation, referential
// integrity filtering, and derived-field computation.
//
// The stage is pure and synchronous: it maps four raw in-memory tables to
// four cleaned tables with no I/O, no clock, and no randomness, so identical
// inputs always produce identical outputs. Invalid rows are silently
// excluded; that is cleaning policy, not an error channel.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when normalizing OrderDate values. The
// winning parse is reduced to a calendar date (no time component).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// isoDate is the normalized output layout for calendar dates.
const isoDate = "2006-01-02"

// nullableString coerces a raw cell to text-or-nil. Missing values stay nil
// (never an empty string); anything else becomes its string representation.
func nullableString(v any) *string {
	if missing(v) {
		return nil
	}
	s := asString(v)
	return &s
}

// missing reports whether a raw cell is absent: nil or blank text.
func missing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// asString renders a raw cell as a string.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asFloat parses a raw cell as a number. Missing or unparsable values report
// ok=false; the caller decides whether that drops the row or applies a
// default. Negative values parse fine.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asID parses a raw cell as an integer identifier. Integral floating forms
// such as "10.0" are accepted; anything fractional or unparsable is invalid.
func asID(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.Trunc(f) != f {
			return 0, false
		}
		return int64(f), true
	case float64:
		if math.Trunc(t) != t {
			return 0, false
		}
		return int64(t), true
	default:
		return 0, false
	}
}

// asDate normalizes a raw cell to a YYYY-MM-DD calendar date. Unparsable
// values are invalid.
func asDate(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), true
		}
	}
	return "", false
}
