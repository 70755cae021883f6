package derive

import (
	"sort"

	"github.com/lfarias/leadstats/models"
)

// LossRow is one loss-analysis group. AgreementCode is empty in the
// raw-reason ranking.
type LossRow struct {
	AgreementCode string
	Reason        string
	Count         int
	Pct           float64 // of the total filtered leads
}

// LossTable carries the grouped rows plus the true filtered total the
// percentages were displayed against, recorded before any zero guard.
type LossTable struct {
	Rows           []LossRow
	TotalGenerated int
}

// LossByAgreement groups lost leads by agreement code and grouped reason,
// sorted descending by count. When the filtered total is zero it is recorded
// as-is for display and substituted with 1 for the percentage division.
func LossByAgreement(leads []models.LeadRecord, totalFiltered int) LossTable {
	type key struct{ code, reason string }
	counts := make(map[key]int)
	var order []key
	for _, l := range leads {
		if l.Stage != models.StageLost {
			continue
		}
		k := key{l.AgreementCode, l.LossReasonGroup}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	den := totalFiltered
	if den == 0 {
		den = 1
	}
	rows := make([]LossRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, LossRow{
			AgreementCode: k.code,
			Reason:        k.reason,
			Count:         counts[k],
			Pct:           round2(float64(counts[k]) / float64(den) * 100),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return LossTable{Rows: rows, TotalGenerated: totalFiltered}
}

// TopLossReasons ranks the raw (ungrouped) loss reasons of lost leads and
// keeps the top five, with the same percentage guard as LossByAgreement.
func TopLossReasons(leads []models.LeadRecord, totalFiltered int) []LossRow {
	counts := make(map[string]int)
	var order []string
	for _, l := range leads {
		if l.Stage != models.StageLost {
			continue
		}
		if _, seen := counts[l.LossReason]; !seen {
			order = append(order, l.LossReason)
		}
		counts[l.LossReason]++
	}

	den := totalFiltered
	if den == 0 {
		den = 1
	}
	rows := make([]LossRow, 0, len(order))
	for _, reason := range order {
		rows = append(rows, LossRow{
			Reason: reason,
			Count:  counts[reason],
			Pct:    round2(float64(counts[reason]) / float64(den) * 100),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > 5 {
		rows = rows[:5]
	}
	return rows
}
