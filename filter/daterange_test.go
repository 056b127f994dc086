package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestWindow(t *testing.T) {
	w := DefaultWindow

	assert.True(t, w.Contains(now, now))
	assert.True(t, w.Contains(time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC), now))
	assert.True(t, w.Contains(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, w.Contains(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, w.Contains(time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC), now))

	assert.NoError(t, w.Check(now, now))
	err := w.Check(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), now)
	assert.ErrorIs(t, err, ErrOutsideWindow)
	assert.ErrorContains(t, err, "2026-01-01")
}

func TestNewDateRange(t *testing.T) {
	a := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	r := NewDateRange(a, b)
	assert.Equal(t, DateRange{From: "2025-07-01", To: "2025-07-10"}, r)
	assert.Equal(t, r, NewDateRange(b, a))
	assert.Equal(t, `{"from":"2025-07-01","to":"2025-07-10"}`, r.JSON())
	assert.Equal(t, "Jul 01 → Jul 10", r.Display())

	open := NewDateRange(a, time.Time{})
	assert.Equal(t, DateRange{From: "2025-07-10"}, open)
	assert.Equal(t, "Jul 10 → ?", open.Display())
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange(`{"from":"2025-07-01","to":"2025-07-10"}`)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2025-07-01", To: "2025-07-10"}, r)

	from, to, err := r.Times(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC), to)

	r, err = ParseDateRange("")
	require.NoError(t, err)
	assert.Equal(t, DateRange{}, r)
	assert.Equal(t, "", r.JSON())
	assert.Equal(t, "Select range", r.Display())

	_, err = ParseDateRange(`{"from":`)
	assert.ErrorContains(t, err, "cannot parse date range")

	_, err = ParseDateRange(`{"from":"07/01/2025"}`)
	assert.ErrorContains(t, err, "invalid range start")
}

func TestDateRange_Display(t *testing.T) {
	assert.Equal(t, "Jul 01 → ?", DateRange{From: "2025-07-01"}.Display())
	assert.Equal(t, "Select range", DateRange{To: "2025-07-01"}.Display())
	assert.Equal(t, "Select range", DateRange{From: "bad"}.Display())
}
