package server

import (
	"strings"
	"time"
)

// parseOptionalTime parses an RFC 3339 timestamp or a bare date. A bare date
// resolves to the start of the day, or to the last instant of the day when
// endOfDay is set so that range filters are inclusive.
func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	ts = ts.UTC()
	if endOfDay {
		ts = ts.Add(24*time.Hour - time.Nanosecond)
	}
	return &ts, nil
}
