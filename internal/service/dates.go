// internal/service/dates.go
package service

import (
	"fmt"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate normalizes a client-supplied date string before it is persisted.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// mergeDate parses an optional date-string field onto the target pointer.
// Absent fields leave the target untouched.
func mergeDate(dst **time.Time, src *string) error {
	if src == nil {
		return nil
	}
	if *src == "" {
		*dst = nil
		return nil
	}
	t, err := parseDate(*src)
	if err != nil {
		return err
	}
	*dst = &t
	return nil
}
