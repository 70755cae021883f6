package schema

import (
	"log/slog"
	"time"

	"github.com/lfarias/leadstats/ingest"
	"github.com/lfarias/leadstats/models"
)

// Source headers of the CRM export. Columns the mapping does not know are
// ignored by construction: only these are ever looked up.
const (
	colID          = "ID do registro."
	colName        = "Nome do negócio"
	colCreated     = "Data de criação"
	colTaxID       = "CPF"
	colPhone       = "Telefone"
	colAgreement   = "Convênio"
	colChannel     = "Origem"
	colCampaign    = "Campanha"
	colSeller      = "Proprietário original do negócio"
	colProduct     = "Tipo de Campanha"
	colTeam        = "Equipe da HubSpot"
	colStage       = "Etapa do negócio"
	colLossReason  = "Motivo de fechamento perdido"
	colProjected   = "Comissão total projetada"
	colValue       = "Valor"
	colEnteredLead = `Date entered "LEAD ( Pipeline de Vendas)"`
	colEnteredNeg  = `Date entered "NEGOCIAÇÃO ( Pipeline de Vendas)"`
	colEnteredCon  = `Date entered "CONTRATAÇÃO ( Pipeline de Vendas)"`
	colEnteredPaid = `Date entered "PAGO ( Pipeline de Vendas)"`
	colEnteredLost = `Date entered "PERDA ( Pipeline de Vendas)"`
)

type leadIndex struct {
	id, name, created, taxID, phone           int
	agreement, channel, campaign, seller      int
	product, team, stage, lossReason          int
	projected, value                          int
	entLead, entNeg, entCon, entPaid, entLost int
}

func newLeadIndex(t *ingest.Table) leadIndex {
	return leadIndex{
		id:         t.Col(colID),
		name:       t.Col(colName),
		created:    t.Col(colCreated),
		taxID:      t.Col(colTaxID),
		phone:      t.Col(colPhone),
		agreement:  t.Col(colAgreement),
		channel:    t.Col(colChannel),
		campaign:   t.Col(colCampaign),
		seller:     t.Col(colSeller),
		product:    t.Col(colProduct),
		team:       t.Col(colTeam),
		stage:      t.Col(colStage),
		lossReason: t.Col(colLossReason),
		projected:  t.Col(colProjected),
		value:      t.Col(colValue),
		entLead:    t.Col(colEnteredLead),
		entNeg:     t.Col(colEnteredNeg),
		entCon:     t.Col(colEnteredCon),
		entPaid:    t.Col(colEnteredPaid),
		entLost:    t.Col(colEnteredLost),
	}
}

// ParseLeads normalizes the raw CRM table into LeadRecords: canonical field
// names, derived columns, typed dates. Cell-level garbage degrades in place
// (zero dates, NaN money); no row is ever fatal. The second return value
// counts rows whose creation timestamp could not be parsed.
func ParseLeads(t *ingest.Table, version models.SchemaVersion, log *slog.Logger) ([]models.LeadRecord, int) {
	idx := newLeadIndex(t)
	leads := make([]models.LeadRecord, 0, len(t.Rows))
	badDates := 0

	for _, row := range t.Rows {
		agreement := t.Field(row, idx.agreement)
		created := parseTimestamp(t.Field(row, idx.created))
		if created.IsZero() && t.Field(row, idx.created) != "" {
			badDates++
		}

		l := models.LeadRecord{
			ID:                  t.Field(row, idx.id),
			Name:                t.Field(row, idx.name),
			TaxID:               t.Field(row, idx.taxID),
			Phone:               t.Field(row, idx.phone),
			Agreement:           agreement,
			AgreementCode:       AgreementCode(agreement),
			Channel:             NormalizeChannel(t.Field(row, idx.channel)),
			CampaignTag:         t.Field(row, idx.campaign),
			Seller:              t.Field(row, idx.seller),
			Product:             t.Field(row, idx.product),
			Team:                t.Field(row, idx.team),
			Stage:               CanonicalStage(t.Field(row, idx.stage)),
			LossReason:          t.Field(row, idx.lossReason),
			LossReasonGroup:     GroupLossReason(t.Field(row, idx.lossReason)),
			CreatedDate:         dayOf(created),
			CreatedClock:        clockOf(created),
			ProjectedCommission: parseNumber(t.Field(row, idx.projected)),
			CommissionValue:     parseNumber(t.Field(row, idx.value)),
		}

		if version == models.Extended {
			l.Team = NormalizeTeam(l.Team)
			l.EnteredLead = dayOf(parseTimestamp(t.Field(row, idx.entLead)))
			l.EnteredNegotiation = dayOf(parseTimestamp(t.Field(row, idx.entNeg)))
			l.EnteredContracting = dayOf(parseTimestamp(t.Field(row, idx.entCon)))
			l.EnteredPaid = dayOf(parseTimestamp(t.Field(row, idx.entPaid)))
			l.EnteredLost = dayOf(parseTimestamp(t.Field(row, idx.entLost)))
		}

		leads = append(leads, l)
	}

	if log != nil {
		log.Info("leads normalized",
			slog.String("dataset", t.Name),
			slog.Int("rows", len(leads)),
			slog.Int("unparseable_dates", badDates))
	}
	return leads, badDates
}

func clockOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05")
}
