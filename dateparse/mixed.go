package dateparse

import "time"

// mixed resolves a month name next to a numeric day, with an optional trailing year.
func (r resolver) mixed(c candidate) (time.Time, bool) {
	switch len(c.tokens) {
	case 2:
		if date, ok := r.dayOfMonth(c.tokens[0], c.tokens[1], 0); ok {
			return r.rollForward(date), true
		}
		if date, ok := r.dayOfMonth(c.tokens[1], c.tokens[0], 0); ok {
			return r.rollForward(date), true
		}
	case 3:
		n, ok := leadingInt(c.tokens[2])
		if !ok {
			return time.Time{}, false
		}
		year := 0
		if n > 1900 {
			year = n
		}

		// A short trailing number falls back to the current year without rolling forward.
		if date, ok := r.dayOfMonth(c.tokens[0], c.tokens[1], year); ok {
			return date, true
		}
		if date, ok := r.dayOfMonth(c.tokens[1], c.tokens[0], year); ok {
			return date, true
		}
	}
	return time.Time{}, false
}

func (r resolver) dayOfMonth(dayTok, monthTok string, year int) (time.Time, bool) {
	day, ok := leadingInt(dayTok)
	if !ok {
		return time.Time{}, false
	}
	month, ok := LookupMonth(monthTok)
	if !ok {
		return time.Time{}, false
	}
	if year == 0 {
		year = r.now.Year()
	}
	return r.exactDate(year, month, day)
}
