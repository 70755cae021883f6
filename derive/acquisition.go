package derive

import (
	"math"
	"sort"

	"github.com/lfarias/leadstats/models"
)

// CACRow is the cost-per-acquisition of one (agreement, product) group.
type CACRow struct {
	Agreement string
	Product   string
	Spend     float64
	Leads     int
	CAC       float64
}

// CAC derives cost-per-acquisition per (agreement, product): groups with zero
// filtered leads are excluded outright, never divided. Rows are ranked
// descending by lead count and cut to topN (0 keeps all).
func CAC(leads []models.LeadRecord, spend []models.SpendRecord, topN int) []CACRow {
	spendTotals := spendByGroup(spend)

	type key struct{ agreement, product string }
	counts := make(map[key]int)
	var order []key
	for _, l := range leads {
		k := key{l.AgreementCode, l.Product}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]CACRow, 0, len(order))
	for _, k := range order {
		n := counts[k]
		total := spendTotals[k.agreement+"\x00"+k.product]
		rows = append(rows, CACRow{
			Agreement: k.agreement,
			Product:   k.product,
			Spend:     round2(total),
			Leads:     n,
			CAC:       round2(total / float64(n)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Leads > rows[j].Leads })
	return limit(rows, topN)
}

// ROIRow is the return on investment of one (agreement, product) group,
// restricted to paid leads.
type ROIRow struct {
	Agreement  string
	Product    string
	Commission float64
	Spend      float64
	ROI        float64 // percent
}

// ROI derives (commission - spend) / spend per (agreement, product) over paid
// leads. Groups with zero (or entirely missing) spend are excluded rather
// than divided. Rows are ranked descending by ROI and cut to topN.
func ROI(leads []models.LeadRecord, spend []models.SpendRecord, topN int) []ROIRow {
	spendTotals := spendByGroup(spend)

	type key struct{ agreement, product string }
	commissions := make(map[key][]float64)
	var order []key
	for _, l := range leads {
		if l.Stage != models.StagePaid {
			continue
		}
		k := key{l.AgreementCode, l.Product}
		if _, seen := commissions[k]; !seen {
			order = append(order, k)
		}
		commissions[k] = append(commissions[k], l.CommissionValue)
	}

	rows := make([]ROIRow, 0, len(order))
	for _, k := range order {
		total := spendTotals[k.agreement+"\x00"+k.product]
		if total == 0 || math.IsNaN(total) {
			continue
		}
		commission := models.SumValid(commissions[k])
		rows = append(rows, ROIRow{
			Agreement:  k.agreement,
			Product:    k.product,
			Commission: round2(commission),
			Spend:      round2(total),
			ROI:        round2((commission - total) / total * 100),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ROI > rows[j].ROI })
	return limit(rows, topN)
}

// spendByGroup sums spend per (agreement, product), skipping NaN amounts
// (unknown channels) the same way the KPI total does.
func spendByGroup(spend []models.SpendRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range spend {
		if amount := s.Amount(); !math.IsNaN(amount) {
			totals[s.Agreement+"\x00"+s.Product] += amount
		}
	}
	return totals
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
