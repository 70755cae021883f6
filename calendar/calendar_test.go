package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBusinessOnly(t *testing.T) {
	// Mon 2025-01-06 through Sun 2025-01-12: five weekdays.
	r := Range{Start: date(2025, 1, 6), End: date(2025, 1, 12)}
	days := Days(r, true)
	assert.Len(t, days, 5)
	for _, d := range days {
		wd := d.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestDaysFullSpan(t *testing.T) {
	r := Range{Start: date(2025, 1, 6), End: date(2025, 1, 12)}
	assert.Len(t, Days(r, false), 7)
}

func TestDaysSingleDay(t *testing.T) {
	r := Range{Start: date(2025, 1, 6), End: date(2025, 1, 6)}
	assert.Len(t, Days(r, false), 1)
	assert.Len(t, Days(r, true), 1) // a Monday

	sat := Range{Start: date(2025, 1, 11), End: date(2025, 1, 11)}
	assert.Empty(t, Days(sat, true))
}

func TestDaysReversedRange(t *testing.T) {
	r := Range{Start: date(2025, 1, 12), End: date(2025, 1, 6)}
	assert.Empty(t, Days(r, false))
	assert.Empty(t, Days(r, true))
}

func TestDaySet(t *testing.T) {
	r := Range{Start: date(2025, 1, 6), End: date(2025, 1, 10)}
	set := NewDaySet(Days(r, true))

	assert.True(t, set.Contains(date(2025, 1, 7)))
	// Timestamps inside an included day count as that day.
	assert.True(t, set.Contains(time.Date(2025, 1, 7, 16, 45, 0, 0, time.UTC)))
	assert.False(t, set.Contains(date(2025, 1, 13)))
	assert.False(t, set.Contains(time.Time{}), "unparseable dates are never included")
}
