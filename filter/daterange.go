package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kario-app/taskfilter/dateparse"
)

var ErrOutsideWindow = errors.New("date is outside the allowed window")

// Window limits selectable dates to Before months back and After months ahead of now.
type Window struct {
	Before int
	After  int
}

var DefaultWindow = Window{Before: 3, After: 3}

// Contains reports whether date lies in the window, both ends included.
func (w Window) Contains(date, now time.Time) bool {
	start := now.AddDate(0, -w.Before, 0)
	end := now.AddDate(0, w.After, 0)
	return !date.Before(start) && !date.After(end)
}

func (w Window) Check(date, now time.Time) error {
	if w.Contains(date, now) {
		return nil
	}
	return fmt.Errorf("%w: %s must be within %d months back and %d months ahead",
		ErrOutsideWindow, dateparse.FormatISO(date), w.Before, w.After)
}

// DateRange is the stored form of a date filter: ISO yyyy-MM-dd ends, either may be blank.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// NewDateRange puts the earlier date first. A zero b leaves the end open.
func NewDateRange(a, b time.Time) DateRange {
	if !b.IsZero() && b.Before(a) {
		a, b = b, a
	}
	return DateRange{From: dateparse.FormatISO(a), To: dateparse.FormatISO(b)}
}

// ParseDateRange reads the JSON form. Blank input is an empty range.
func ParseDateRange(data string) (DateRange, error) {
	r := DateRange{}
	if data == "" {
		return r, nil
	}
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return DateRange{}, fmt.Errorf("cannot parse date range: %w", err)
	}
	if _, _, err := r.Times(time.UTC); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Times(loc *time.Location) (from, to time.Time, err error) {
	from, err = dateparse.ParseISO(r.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid range start: %w", err)
	}
	to, err = dateparse.ParseISO(r.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid range end: %w", err)
	}
	return from, to, nil
}

func (r DateRange) JSON() string {
	if r.From == "" && r.To == "" {
		return ""
	}
	data, _ := json.Marshal(r)
	return string(data)
}

// Display renders "Nov 03 → Nov 22", "Nov 03 → ?" while only the start is picked,
// or "Select range".
func (r DateRange) Display() string {
	from, to, err := r.Times(time.UTC)
	if err != nil || from.IsZero() {
		return "Select range"
	}
	if to.IsZero() {
		return from.Format("Jan 02") + " → ?"
	}
	return from.Format("Jan 02") + " → " + to.Format("Jan 02")
}
