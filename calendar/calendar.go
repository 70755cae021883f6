// Package calendar computes the set of calendar days a date-indexed table is
// allowed to contribute to, with an optional Monday-Friday restriction (no
// holiday calendar).
package calendar

import "time"

// Range is an inclusive [Start, End] date range. A reversed range (Start
// after End) contains no days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days lists every included calendar day in the range, weekdays only when
// businessOnly is set. A reversed range yields an empty slice.
func Days(r Range, businessOnly bool) []time.Time {
	start, end := dayOf(r.Start), dayOf(r.End)
	if start.After(end) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if businessOnly && isWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// DaySet is a membership set over included days.
type DaySet map[time.Time]struct{}

func NewDaySet(days []time.Time) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set[dayOf(d)] = struct{}{}
	}
	return set
}

// Contains reports whether t falls on an included day. The zero time (an
// unparseable source date) is never included.
func (s DaySet) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	_, ok := s[dayOf(t)]
	return ok
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
