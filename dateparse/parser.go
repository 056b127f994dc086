// Package dateparse reads loosely typed dates and date ranges such as "3 nov", "11/3/2025"
// or "nov 10 - nov 22". Text that cannot be resolved yields an empty Range, never an error.
package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// Range is the result of a single Parse call. A missing date is the zero time.Time.
type Range struct {
	Start   time.Time
	End     time.Time
	IsRange bool // Set only when both sides of a range separator were resolved.
}

// Empty reports whether nothing was resolved.
func (r Range) Empty() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r Range) String() string {
	return FormatRange(r.Start, r.End)
}

// Parser resolves dates relative to Now. The zero value uses time.Now.
type Parser struct {
	Now func() time.Time
}

var rangePattern = regexp.MustCompile(`(?i)^(.+?)\s*(?:to|-|–)\s*(.+)$`)

// Parse resolves text with the zero Parser.
func Parse(text string) Range {
	return Parser{}.Parse(text)
}

// Parse tries "A to B", "A - B" and "A – B" first. When either side fails the whole text is
// resolved as a single date, in which case End equals Start.
func (p Parser) Parse(text string) Range {
	if strings.TrimSpace(text) == "" {
		return Range{}
	}

	r := resolver{now: p.Reference()}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		start, startOk := r.single(m[1])
		end, endOk := r.single(m[2])
		if startOk && endOk {
			return Range{Start: start, End: end, IsRange: true}
		}
	}

	if date, ok := r.single(text); ok {
		return Range{Start: date, End: date}
	}
	return Range{}
}

// ParseDate resolves text as a single date, ignoring range separators.
func (p Parser) ParseDate(text string) (time.Time, bool) {
	r := resolver{now: p.Reference()}
	return r.single(text)
}

// Reference is the time dates are resolved against: Now() or the current time.
func (p Parser) Reference() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

type candidate struct {
	text   string // Trimmed input, used by the standard layouts.
	tokens []string
}

type strategy func(resolver, candidate) (time.Time, bool)

// Order matters: the first strategy to resolve wins.
var strategies = []strategy{
	resolver.numeric,
	resolver.mixed,
	resolver.standard,
}

// resolver holds the reference time of one Parse call.
type resolver struct {
	now time.Time
}

func (r resolver) single(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}

	tokens := tokenize(trimmed)
	if len(tokens) == 0 {
		return time.Time{}, false
	}
	c := candidate{text: trimmed, tokens: tokens}
	for _, s := range strategies {
		if date, ok := s(r, c); ok {
			return date, true
		}
	}
	return time.Time{}, false
}

func (r resolver) date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, r.now.Location())
}

// exactDate refuses values that time.Date would normalize, e.g. April 31.
func (r resolver) exactDate(y int, m time.Month, d int) (time.Time, bool) {
	date := r.date(y, m, d)
	if date.Month() != m || date.Day() != d {
		return time.Time{}, false
	}
	return date, true
}

// rollForward moves a date already passed this year to the next year. Today counts as passed.
func (r resolver) rollForward(date time.Time) time.Time {
	if !date.Before(r.now) {
		return date
	}
	return r.date(r.now.Year()+1, date.Month(), date.Day())
}
