package derive

import (
	"sort"
	"time"

	"github.com/lfarias/leadstats/models"
)

// CohortMatrix is the day-offset conversion matrix: one row per cohort entry
// date (descending), one column per day offset (ascending). Cell values are
// the percentage of the cohort converting at that offset.
type CohortMatrix struct {
	Dates   []time.Time
	Offsets []int
	Values  [][]float64 // Values[row][col], 0 where no conversion
	Sizes   []int       // cohort sizes, aligned with Dates
}

// Cohort pivots the filtered leads into a cohort matrix for the selected
// target stage. The cohort key is the lead-stage entry date (creation date
// when the export has no entry dates); leads that never reached the target
// stage count toward their cohort's size but produce no offset cell.
func Cohort(leads []models.LeadRecord, target models.Stage) CohortMatrix {
	sizes := make(map[time.Time]int)
	counts := make(map[time.Time]map[int]int)
	offsetSet := make(map[int]struct{})

	for _, l := range leads {
		entry := l.EnteredLead
		if entry.IsZero() {
			entry = l.CreatedDate
		}
		if entry.IsZero() {
			continue
		}
		sizes[entry]++

		event := l.EnteredAt(target)
		if event.IsZero() {
			continue
		}
		offset := int(event.Sub(entry).Hours() / 24)
		if counts[entry] == nil {
			counts[entry] = make(map[int]int)
		}
		counts[entry][offset]++
		offsetSet[offset] = struct{}{}
	}

	m := CohortMatrix{}
	for d := range sizes {
		m.Dates = append(m.Dates, d)
	}
	sort.Slice(m.Dates, func(i, j int) bool { return m.Dates[i].After(m.Dates[j]) })
	for o := range offsetSet {
		m.Offsets = append(m.Offsets, o)
	}
	sort.Ints(m.Offsets)

	m.Values = make([][]float64, len(m.Dates))
	m.Sizes = make([]int, len(m.Dates))
	for i, d := range m.Dates {
		size := sizes[d]
		m.Sizes[i] = size
		row := make([]float64, len(m.Offsets))
		for j, o := range m.Offsets {
			if n := counts[d][o]; n > 0 {
				row[j] = round2(float64(n) / float64(size) * 100)
			}
		}
		m.Values[i] = row
	}
	return m
}
