package derive

import "github.com/lfarias/leadstats/models"

// FunnelRow is one stage of the funnel view. Pct is relative to the
// LEAD-stage count.
type FunnelRow struct {
	Stage models.Stage
	Count int
	Pct   float64
}

// Funnel counts filtered leads per canonical stage in the fixed order,
// regardless of input order; a stage nobody reached renders as zero, never
// omitted. The extended schema counts stage-entry dates (a lead appears in
// every stage it passed through); the base schema only knows the current
// stage. Out-of-vocabulary stages never enter the funnel.
func Funnel(leads []models.LeadRecord, version models.SchemaVersion) []FunnelRow {
	rows := make([]FunnelRow, 0, len(models.FunnelOrder))
	for _, stage := range models.FunnelOrder {
		n := 0
		for _, l := range leads {
			if version == models.Extended {
				if !l.EnteredAt(stage).IsZero() {
					n++
				}
			} else if l.Stage == stage {
				n++
			}
		}
		rows = append(rows, FunnelRow{Stage: stage, Count: n})
	}

	initial := rows[0].Count
	if initial == 0 {
		initial = 1
	}
	for i := range rows {
		rows[i].Pct = round2(float64(rows[i].Count) / float64(initial) * 100)
	}
	return rows
}
