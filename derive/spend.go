// Package derive produces the report tables of a pipeline pass. Every table
// is a pure aggregation over the already-filtered views; nothing here holds
// state between passes.
package derive

import (
	"math"

	"github.com/samber/lo"

	"github.com/lfarias/leadstats/models"
)

// SpendRow is one (agreement, product, channel) spend group. Amount is NaN
// when the channel has no known rate.
type SpendRow struct {
	Agreement string
	Product   string
	Channel   string
	Quantity  float64
	Amount    float64
}

// SpendBreakdown groups the filtered spend ledger by agreement, product and
// channel, summing quantities and deriving the paid value from the channel
// rate. Groups keep first-seen order.
func SpendBreakdown(spend []models.SpendRecord) []SpendRow {
	type key struct{ agreement, product, channel string }
	sums := make(map[key][]float64)
	price := make(map[key]float64)
	var order []key

	for _, s := range spend {
		k := key{s.Agreement, s.Product, s.Channel}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
			price[k] = s.UnitPrice
		}
		sums[k] = append(sums[k], s.Quantity)
	}

	rows := make([]SpendRow, 0, len(order))
	for _, k := range order {
		qty := models.SumValid(sums[k])
		rows = append(rows, SpendRow{
			Agreement: k.agreement,
			Product:   k.product,
			Channel:   k.channel,
			Quantity:  qty,
			Amount:    price[k] * qty, // NaN rate propagates
		})
	}
	return rows
}

// TotalSpend sums the breakdown, excluding NaN groups (unknown channels) from
// the total rather than coercing them to zero.
func TotalSpend(rows []SpendRow) float64 {
	return models.SumValid(lo.Map(rows, func(r SpendRow, _ int) float64 { return r.Amount }))
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
