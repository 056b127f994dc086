package dateparse

import "time"

const (
	// ISO is the layout dates are exchanged in with the UI.
	ISO = "2006-01-02"

	shortLayout = "Jan 2"
)

// FormatRange renders "Nov 10 - Nov 22", or "Nov 10" when start and end are the same
// instant or end is missing. A missing start gives "" even when end is set.
func FormatRange(start, end time.Time) string {
	switch {
	case start.IsZero():
		return ""
	case end.IsZero(), start.Equal(end):
		return start.Format(shortLayout)
	default:
		return start.Format(shortLayout) + " - " + end.Format(shortLayout)
	}
}

// FormatISO renders t as yyyy-MM-dd, or "" for the zero time.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISO)
}

// ParseISO reads a yyyy-MM-dd date at midnight in loc. Blank input gives the zero time.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(ISO, s, loc)
}
