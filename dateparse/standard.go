package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// Tried in order, the first layout matching the whole input wins.
var standardLayouts = []layout{
	mustLayout("MMM dd, yyyy"),
	mustLayout("MMM dd yyyy"),
	mustLayout("MMM dd"),
	mustLayout("MMMM dd, yyyy"),
	mustLayout("MMMM dd yyyy"),
	mustLayout("MMMM dd"),
	mustLayout("yyyy-MM-dd"),
	mustLayout("MM/dd/yyyy"),
	mustLayout("MM-dd-yyyy"),
	mustLayout("dd/MM/yyyy"),
	mustLayout("dd-MM-yyyy"),
}

var fourDigits = regexp.MustCompile(`\d{4}`)

var (
	fullMonths = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	shortMonths = []string{
		"jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec",
	}
)

// standard matches the whole text against standardLayouts. A date in the past moves to next
// year unless the text carries a four digit year.
func (r resolver) standard(c candidate) (time.Time, bool) {
	for _, l := range standardLayouts {
		f, ok := l.match(c.text)
		if !ok {
			continue
		}

		year := f.year
		if !f.hasYear {
			year = r.now.Year()
		}
		date, ok := r.exactDate(year, f.month, f.day)
		if !ok {
			continue
		}

		if date.Before(r.now) && !fourDigits.MatchString(c.text) {
			date = r.date(r.now.Year()+1, date.Month(), date.Day())
		}
		return date, true
	}
	return time.Time{}, false
}

type elemKind int

const (
	elemLiteral elemKind = iota
	elemFullMonth
	elemShortMonth
	elemMonth
	elemDay
	elemYear
)

type elem struct {
	kind elemKind
	lit  string
}

type layout struct {
	elems []elem
}

type fields struct {
	year    int
	month   time.Month
	day     int
	hasYear bool
}

var layoutTokens = []struct {
	tok  string
	kind elemKind
}{
	{"MMMM", elemFullMonth},
	{"MMM", elemShortMonth},
	{"MM", elemMonth},
	{"dd", elemDay},
	{"yyyy", elemYear},
}

func mustLayout(src string) layout {
	var l layout
	rest := src
	for rest != "" {
		matched := false
		for _, t := range layoutTokens {
			if strings.HasPrefix(rest, t.tok) {
				l.elems = append(l.elems, elem{kind: t.kind})
				rest = rest[len(t.tok):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		n := len(l.elems)
		if n > 0 && l.elems[n-1].kind == elemLiteral {
			l.elems[n-1].lit += rest[:1]
		} else {
			l.elems = append(l.elems, elem{kind: elemLiteral, lit: rest[:1]})
		}
		rest = rest[1:]
	}
	return l
}

// match scans s left to right without backtracking. Numeric fields take as many digits as
// they allow, so "03-11-25" fits yyyy-MM-dd with year 3.
func (l layout) match(s string) (fields, bool) {
	var f fields
	for _, e := range l.elems {
		switch e.kind {
		case elemLiteral:
			if !strings.HasPrefix(s, e.lit) {
				return fields{}, false
			}
			s = s[len(e.lit):]

		case elemFullMonth, elemShortMonth:
			names := shortMonths
			if e.kind == elemFullMonth {
				names = fullMonths
			}
			i, n := matchName(s, names)
			if i < 0 {
				return fields{}, false
			}
			f.month = time.Month(i + 1)
			s = s[n:]

		case elemMonth:
			v, n := digits(s, 2)
			if n == 0 || v < 1 || v > 12 {
				return fields{}, false
			}
			f.month = time.Month(v)
			s = s[n:]

		case elemDay:
			v, n := digits(s, 2)
			if n == 0 || v < 1 || v > 31 {
				return fields{}, false
			}
			f.day = v
			s = s[n:]

		case elemYear:
			v, n := digits(s, 4)
			if n == 0 || v < 1 {
				return fields{}, false
			}
			f.year = v
			f.hasYear = true
			s = s[n:]
		}
	}

	if strings.TrimSpace(s) != "" {
		return fields{}, false
	}
	return f, true
}

func matchName(s string, names []string) (idx, n int) {
	for i, name := range names {
		if len(s) >= len(name) && strings.EqualFold(s[:len(name)], name) {
			return i, len(name)
		}
	}
	return -1, 0
}

func digits(s string, width int) (val, n int) {
	for n < width && n < len(s) && s[n] >= '0' && s[n] <= '9' {
		val = val*10 + int(s[n]-'0')
		n++
	}
	return val, n
}
