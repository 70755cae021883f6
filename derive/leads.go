package derive

import (
	"sort"
	"time"

	"github.com/lfarias/leadstats/models"
)

// AgreementCount is one (agreement, product) slice of the stacked
// leads-by-agreement view. AgreementTotal repeats the per-agreement total so
// stacked segments can be ranked without a second lookup.
type AgreementCount struct {
	AgreementCode  string
	Product        string
	Count          int
	AgreementTotal int
}

// LeadsByAgreement counts filtered leads per agreement code, stacked by
// product, sorted descending by the agreement total. Ties keep first-seen
// group order (stable sort).
func LeadsByAgreement(leads []models.LeadRecord) []AgreementCount {
	totals := make(map[string]int)
	var codeOrder []string
	type key struct{ code, product string }
	counts := make(map[key]int)
	productOrder := make(map[string][]string)

	for _, l := range leads {
		if _, seen := totals[l.AgreementCode]; !seen {
			codeOrder = append(codeOrder, l.AgreementCode)
		}
		totals[l.AgreementCode]++
		k := key{l.AgreementCode, l.Product}
		if _, seen := counts[k]; !seen {
			productOrder[l.AgreementCode] = append(productOrder[l.AgreementCode], l.Product)
		}
		counts[k]++
	}

	var rows []AgreementCount
	for _, code := range codeOrder {
		for _, product := range productOrder[code] {
			rows = append(rows, AgreementCount{
				AgreementCode:  code,
				Product:        product,
				Count:          counts[key{code, product}],
				AgreementTotal: totals[code],
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AgreementTotal > rows[j].AgreementTotal })
	return rows
}

// DayCount is one (date, product) stacked segment of the leads-by-day view.
type DayCount struct {
	Date    time.Time
	Product string
	Count   int
}

// DayTotal is the per-day total overlay of the same view.
type DayTotal struct {
	Date  time.Time
	Count int
}

// LeadsByDay counts filtered leads per day and product plus a per-day total
// series. The input view is already calendar-restricted, so both series cover
// the same included-day set.
func LeadsByDay(leads []models.LeadRecord) ([]DayCount, []DayTotal) {
	type key struct {
		date    time.Time
		product string
	}
	counts := make(map[key]int)
	totals := make(map[time.Time]int)
	for _, l := range leads {
		counts[key{l.CreatedDate, l.Product}]++
		totals[l.CreatedDate]++
	}

	rows := make([]DayCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, DayCount{Date: k.date, Product: k.product, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Product < rows[j].Product
	})

	days := make([]DayTotal, 0, len(totals))
	for d, n := range totals {
		days = append(days, DayTotal{Date: d, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return rows, days
}
