// Package normalize holds the pure field normalizers applied to
// user-submitted event input before it is allowed anywhere near storage.
// Every function is stateless and deterministic.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	slugTrimEnds = regexp.MustCompile(`^-+|-+$`)

	// time24 matches a strict 24-hour HH:MM (00-23, 00-59).
	time24 = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// Slug derives a URL-safe, lowercase, hyphen-separated identifier from a
// title. An empty result means the title had no usable characters; callers
// must reject it.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return slugTrimEnds.ReplaceAllString(s, "")
}

// InvalidDateError reports an event date that could not be parsed.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q", e.Value)
}

// InvalidTimeError reports an event time that could not be parsed.
type InvalidTimeError struct {
	Value string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time format: %q", e.Value)
}

// dateLayouts are tried in order. Slash-separated dates are read
// month-first (US order). Parsing is locale-independent and performs no
// timezone correction: the calendar date is formatted back as given.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"2006/01/02",
}

// Date normalizes a free-text calendar date to ISO "YYYY-MM-DD".
func Date(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", &InvalidDateError{Value: raw}
}

// timeLayouts are tried against the upper-cased input when the strict
// HH:MM pattern does not match.
var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04:05",
}

// Time normalizes a time-of-day expression to zero-padded 24-hour
// "HH:MM". Input already in strict HH:MM form is returned as-is.
func Time(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if time24.MatchString(s) {
		return s, nil
	}
	up := strings.ToUpper(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, up); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", &InvalidTimeError{Value: raw}
}

// StringList interprets a raw string as a list: a JSON array is parsed
// and flattened, anything else is split on commas. Elements are trimmed
// and empties dropped. It never fails; unusable input yields an empty
// slice. Upstream data entry is unstructured, so callers that require at
// least one item must enforce that themselves.
func StringList(raw string) []string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") {
		if items, ok := fromJSONArray(s); ok {
			return items
		}
	}
	return splitComma(s)
}

// Flatten normalizes an already-sequenced value. A single element that
// itself holds a JSON array (a shape produced by older write paths) is
// parsed and flattened; otherwise each element is trimmed and empties
// dropped. Like StringList, it never fails.
func Flatten(values []string) []string {
	if len(values) == 1 {
		if s := strings.TrimSpace(values[0]); strings.HasPrefix(s, "[") {
			if items, ok := fromJSONArray(s); ok {
				return items
			}
		}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func fromJSONArray(s string) ([]string, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		var t string
		if str, ok := v.(string); ok {
			t = strings.TrimSpace(str)
		} else {
			t = strings.TrimSpace(fmt.Sprintf("%v", v))
		}
		if t != "" {
			out = append(out, t)
		}
	}
	return out, true
}

func splitComma(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
