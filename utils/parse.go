package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	// TimestampLayout is the fixed layout of the five order lifecycle
	// timestamp columns in the source data
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the layout of date-only filter parameters
	DateLayout = "2006-01-02"
)

// ParseTimestamp parses a source timestamp value. Empty or
// unparseable values return nil — the loader must never abort on a
// bad cell.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	ts, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return nil
	}
	return &ts
}

// ParseDate parses a date-only value in YYYY-MM-DD form
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// ParseFloat parses a numeric cell, returning 0 for empty or
// unparseable values
func ParseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt parses an integer cell, returning 0 for empty or
// unparseable values
func ParseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// NullableString returns nil for an empty cell and a pointer to the
// trimmed value otherwise
func NullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// SplitList splits a comma-separated filter parameter into its
// values, trimming whitespace. An empty parameter yields an empty
// (non-nil) slice, which rejects every row — distinct from an absent
// parameter, which leaves the predicate out of scope.
func SplitList(value string) []string {
	values := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
