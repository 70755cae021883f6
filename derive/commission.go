package derive

import (
	"math"
	"sort"

	"github.com/lfarias/leadstats/models"
)

// CommissionRow is the five-number summary of projected commission for one
// agreement, the shape a box-plot renders directly.
type CommissionRow struct {
	AgreementCode string
	Min           float64
	Q1            float64
	Median        float64
	Q3            float64
	Max           float64
	Outliers      []float64 // beyond the 1.5*IQR fences
}

// CommissionSummary computes the projected-commission distribution per
// agreement over the filtered leads. NaN cells are excluded from their
// group's distribution; groups with no valid sample are omitted.
func CommissionSummary(leads []models.LeadRecord) []CommissionRow {
	samples := make(map[string][]float64)
	for _, l := range leads {
		if math.IsNaN(l.ProjectedCommission) {
			continue
		}
		samples[l.AgreementCode] = append(samples[l.AgreementCode], l.ProjectedCommission)
	}

	rows := make([]CommissionRow, 0, len(samples))
	for code, vals := range samples {
		sort.Float64s(vals)
		q1 := quantile(vals, 0.25)
		q3 := quantile(vals, 0.75)
		fence := 1.5 * (q3 - q1)

		row := CommissionRow{
			AgreementCode: code,
			Min:           vals[0],
			Q1:            q1,
			Median:        quantile(vals, 0.5),
			Q3:            q3,
			Max:           vals[len(vals)-1],
		}
		for _, v := range vals {
			if v < q1-fence || v > q3+fence {
				row.Outliers = append(row.Outliers, v)
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AgreementCode < rows[j].AgreementCode })
	return rows
}

// quantile interpolates linearly between closest ranks over a sorted sample.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
