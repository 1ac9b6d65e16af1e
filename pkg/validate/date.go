package validate

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate reads a business date. RFC 3339 timestamps are accepted too and
// keep their calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
