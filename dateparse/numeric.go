package dateparse

import "time"

// numeric resolves 2 or 3 numeric tokens, telling month from day by magnitude.
// "3/5" is read month first, which differs from day-first locales.
func (r resolver) numeric(c candidate) (time.Time, bool) {
	nums, ok := leadingInts(c.tokens)
	if !ok {
		return time.Time{}, false
	}

	var month, day, year int
	switch len(nums) {
	case 2:
		month, day, ok = monthDay(nums[0], nums[1], true)
	case 3:
		switch {
		case nums[2] > 1900:
			year = nums[2]
			month, day, ok = monthDay(nums[0], nums[1], true)
		case nums[0] > 1900:
			// yyyy/mm/dd and yyyy/dd/mm only when one part is clearly a day.
			year = nums[0]
			month, day, ok = monthDay(nums[1], nums[2], false)
		default:
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}

	if year != 0 {
		return r.exactDate(year, time.Month(month), day)
	}

	date, ok := r.exactDate(r.now.Year(), time.Month(month), day)
	if !ok {
		return time.Time{}, false
	}
	return r.rollForward(date), true
}

// monthDay assigns a value above 12 to the day. When both are ambiguous the first one is
// the month, unless monthFirst is off.
func monthDay(a, b int, monthFirst bool) (month, day int, ok bool) {
	switch {
	case a > 12 && b <= 12:
		return b, a, true
	case b > 12 && a <= 12:
		return a, b, true
	case monthFirst && a <= 12 && b <= 12:
		return a, b, true
	default:
		return 0, 0, false
	}
}
