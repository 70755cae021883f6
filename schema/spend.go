package schema

import (
	"log/slog"
	"math"

	"github.com/lfarias/leadstats/ingest"
	"github.com/lfarias/leadstats/models"
)

// Source headers of the spend ledger. The Team column only exists in the
// extended layout.
const (
	colSpendDate      = "Data"
	colSpendAgreement = "Convênio"
	colSpendProduct   = "Produto"
	colSpendChannel   = "Canal"
	colSpendQuantity  = "Quantidade"
	colSpendTeam      = "Equipe"
)

// ParseSpend normalizes the raw spend ledger: day-first dates, quantity as a
// number (NaN on garbage), unit price attached from the fixed channel rate
// table. Unknown channels keep a NaN unit price so their spend propagates as
// missing rather than zero. The second return value counts rows with an
// unparseable date or quantity.
func ParseSpend(t *ingest.Table, version models.SchemaVersion, log *slog.Logger) ([]models.SpendRecord, int) {
	dateCol := t.Col(colSpendDate)
	agreementCol := t.Col(colSpendAgreement)
	productCol := t.Col(colSpendProduct)
	channelCol := t.Col(colSpendChannel)
	quantityCol := t.Col(colSpendQuantity)
	teamCol := t.Col(colSpendTeam)

	spend := make([]models.SpendRecord, 0, len(t.Rows))
	degraded := 0
	for _, row := range t.Rows {
		channel := t.Field(row, channelCol)
		rec := models.SpendRecord{
			Date:      parseDayFirst(t.Field(row, dateCol)),
			Agreement: t.Field(row, agreementCol),
			Product:   t.Field(row, productCol),
			Channel:   channel,
			Quantity:  parseNumber(t.Field(row, quantityCol)),
			UnitPrice: UnitPrice(channel),
		}
		if version == models.Extended {
			rec.Team = NormalizeTeam(t.Field(row, teamCol))
		}
		if rec.Date.IsZero() || math.IsNaN(rec.Quantity) {
			degraded++
		}
		spend = append(spend, rec)
	}

	if log != nil {
		log.Info("spend normalized",
			slog.String("dataset", t.Name),
			slog.Int("rows", len(spend)),
			slog.Int("degraded_rows", degraded))
	}
	return spend, degraded
}
