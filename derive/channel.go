package derive

import (
	"math"

	"github.com/lfarias/leadstats/models"
)

// ChannelRow joins lead generation with message spend per channel. Quantity is
// a NaN-free sum; Amount stays NaN for channels with no known rate or no spend
// rows at all.
type ChannelRow struct {
	Channel  string
	Leads    int
	Quantity float64
	Amount   float64
}

// ChannelSummary counts filtered leads per channel and left-joins the spend
// ledger's message quantity and paid value. Spend on channels that generated
// no leads is dropped by the join, mirroring the lead-side vocabulary.
func ChannelSummary(leads []models.LeadRecord, spend []models.SpendRecord) []ChannelRow {
	counts := make(map[string]int)
	var order []string
	for _, l := range leads {
		if _, seen := counts[l.Channel]; !seen {
			order = append(order, l.Channel)
		}
		counts[l.Channel]++
	}

	qty := make(map[string][]float64)
	price := make(map[string]float64)
	for _, s := range spend {
		qty[s.Channel] = append(qty[s.Channel], s.Quantity)
		price[s.Channel] = s.UnitPrice
	}

	rows := make([]ChannelRow, 0, len(order))
	for _, ch := range order {
		total := models.SumValid(qty[ch])
		row := ChannelRow{Channel: ch, Leads: counts[ch], Quantity: total, Amount: math.NaN()}
		if len(qty[ch]) > 0 {
			row.Amount = price[ch] * total
		}
		rows = append(rows, row)
	}
	return rows
}
