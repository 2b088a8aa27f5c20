// AngelaMos | 2026
// timeutil.go

package timeutil

import (
	"fmt"
	"time"
)

// DisplayLayout is the format every API date field is rendered with.
const DisplayLayout = "01/02/2006 15:04"

var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	DisplayLayout,
}

// FormatDate renders a timestamp in the shared MM/DD/YYYY HH:MM shape.
// Zero times render as an empty string rather than a garbage date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DisplayLayout)
}

// ParseDate accepts the handful of date shapes clients actually send.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func Yesterday() time.Time {
	return time.Now().UTC().AddDate(0, 0, -1)
}

func OneYearFromNow() time.Time {
	return time.Now().UTC().AddDate(1, 0, 0)
}
