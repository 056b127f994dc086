package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLayout_match(t *testing.T) {
	tests := []struct {
		layout string
		input  string
		exp    fields
		ok     bool
	}{
		{"MMM dd, yyyy", "Nov 03, 2025", fields{2025, time.November, 3, true}, true},
		{"MMM dd, yyyy", "nov 3, 2025", fields{2025, time.November, 3, true}, true},
		{"MMM dd", "DEC 9", fields{0, time.December, 9, false}, true},
		{"MMM dd", "dec 9  ", fields{0, time.December, 9, false}, true},
		{"MMM dd", "december 9", fields{}, false},
		{"MMMM dd yyyy", "December 9 2024", fields{2024, time.December, 9, true}, true},
		{"yyyy-MM-dd", "2025-11-03", fields{2025, time.November, 3, true}, true},
		{"yyyy-MM-dd", "03-11-25", fields{3, time.November, 25, true}, true},
		{"yyyy-MM-dd", "2025-13-03", fields{}, false},
		{"MM/dd/yyyy", "11/03/2025", fields{2025, time.November, 3, true}, true},
		{"MM/dd/yyyy", "11/03/2025x", fields{}, false},
		{"dd-MM-yyyy", "31-12-1999", fields{1999, time.December, 31, true}, true},
		{"dd-MM-yyyy", "00-12-1999", fields{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.layout+" "+tt.input, func(t *testing.T) {
			f, ok := mustLayout(tt.layout).match(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.exp, f)
		})
	}
}

func TestResolver_standard(t *testing.T) {
	r := resolver{now: testNow}

	// No year: passed dates go to next year.
	d, ok := r.standard(candidate{text: "Mar 05"})
	assert.True(t, ok)
	assert.Equal(t, day(2026, time.March, 5), d)

	d, ok = r.standard(candidate{text: "Jul 05"})
	assert.True(t, ok)
	assert.Equal(t, day(2025, time.July, 5), d)

	// A four digit year is kept even in the past.
	d, ok = r.standard(candidate{text: "March 05, 2020"})
	assert.True(t, ok)
	assert.Equal(t, day(2020, time.March, 5), d)

	// Valid fields, impossible date: every layout is skipped.
	_, ok = r.standard(candidate{text: "02/30/2025"})
	assert.False(t, ok)

	// The first layout wins: month/day beats day/month.
	d, ok = r.standard(candidate{text: "04/05/2030"})
	assert.True(t, ok)
	assert.Equal(t, day(2030, time.April, 5), d)

	d, ok = r.standard(candidate{text: "25/05/2030"})
	assert.True(t, ok)
	assert.Equal(t, day(2030, time.May, 25), d)
}

func TestResolver_numeric(t *testing.T) {
	r := resolver{now: testNow}

	_, ok := r.numeric(candidate{tokens: []string{"12"}})
	assert.False(t, ok)

	_, ok = r.numeric(candidate{tokens: []string{"nov", "3"}})
	assert.False(t, ok)

	_, ok = r.numeric(candidate{tokens: []string{"0", "3"}})
	assert.False(t, ok)

	d, ok := r.numeric(candidate{tokens: []string{"2", "29", "2028"}})
	assert.True(t, ok)
	assert.Equal(t, day(2028, time.February, 29), d)

	_, ok = r.numeric(candidate{tokens: []string{"2", "29", "2027"}})
	assert.False(t, ok)
}

func TestResolver_mixed(t *testing.T) {
	r := resolver{now: testNow}

	d, ok := r.mixed(candidate{tokens: []string{"jan", "1"}})
	assert.True(t, ok)
	assert.Equal(t, day(2026, time.January, 1), d)

	_, ok = r.mixed(candidate{tokens: []string{"jan", "foo"}})
	assert.False(t, ok)

	_, ok = r.mixed(candidate{tokens: []string{"1", "jan", "foo"}})
	assert.False(t, ok)

	d, ok = r.mixed(candidate{tokens: []string{"jan", "1", "2030"}})
	assert.True(t, ok)
	assert.Equal(t, day(2030, time.January, 1), d)
}
