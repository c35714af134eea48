package availability

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat is returned when a PMS date string matches none of the
// known layouts. Callers drop the interval and keep going.
var ErrInvalidFormat = errors.New("availability: unrecognized date format")

// dateLayouts are tried in this exact order; the first layout that parses
// wins. Streamline usually sends MM/DD/YYYY, so "01/02/2026" is always read
// as January 2 even though the DD/MM/YYYY fallback would also match.
var dateLayouts = []string{
	"01/02/2006", // MM/DD/YYYY
	"2006-01-02", // YYYY-MM-DD
	"01-02-2006", // MM-DD-YYYY
	"02/01/2006", // DD/MM/YYYY
}

// ParseDate normalizes a PMS date string into a civil date at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
}
