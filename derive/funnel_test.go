package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/leadstats/models"
)

func TestFunnelFixedOrder(t *testing.T) {
	// Input rows deliberately out of stage order.
	leads := []models.LeadRecord{
		{Stage: models.StageLost},
		{Stage: models.StagePaid},
		{Stage: models.StageLead},
		{Stage: models.StageLead},
		{Stage: models.StageNegotiation},
	}

	rows := Funnel(leads, models.Base)
	require.Len(t, rows, 5)
	assert.Equal(t, models.FunnelOrder, []models.Stage{rows[0].Stage, rows[1].Stage, rows[2].Stage, rows[3].Stage, rows[4].Stage})

	assert.Equal(t, 2, rows[0].Count) // LEAD
	assert.Equal(t, 1, rows[1].Count) // NEGOTIATION
	assert.Equal(t, 0, rows[2].Count, "missing stage renders zero, never omitted")
	assert.Equal(t, 1, rows[3].Count) // PAID
	assert.Equal(t, 1, rows[4].Count) // LOST

	assert.Equal(t, 100.0, rows[0].Pct)
	assert.Equal(t, 50.0, rows[1].Pct, "percent is relative to the LEAD count")
}

func TestFunnelZeroLeadStage(t *testing.T) {
	leads := []models.LeadRecord{{Stage: models.StagePaid}}
	rows := Funnel(leads, models.Base)
	assert.Equal(t, 0, rows[0].Count)
	assert.Equal(t, 100.0, rows[3].Pct, "zero LEAD count divides by 1 instead of raising")
}

func TestFunnelIgnoresUnknownStages(t *testing.T) {
	leads := []models.LeadRecord{
		{Stage: models.StageLead},
		{Stage: models.Stage("QUALIFICAÇÃO")},
	}
	rows := Funnel(leads, models.Base)
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	assert.Equal(t, 1, total, "out-of-vocabulary stages never enter the funnel")
}

func TestFunnelExtendedCountsEntryDates(t *testing.T) {
	leads := []models.LeadRecord{
		{Stage: models.StagePaid, EnteredLead: day(6), EnteredNegotiation: day(7), EnteredPaid: day(9)},
		{Stage: models.StageLost, EnteredLead: day(6), EnteredLost: day(8)},
	}

	rows := Funnel(leads, models.Extended)
	assert.Equal(t, 2, rows[0].Count, "a lead appears in every stage it passed through")
	assert.Equal(t, 1, rows[1].Count)
	assert.Equal(t, 0, rows[2].Count)
	assert.Equal(t, 1, rows[3].Count)
	assert.Equal(t, 1, rows[4].Count)
	assert.Equal(t, 50.0, rows[3].Pct)
}

func TestFunnelEmpty(t *testing.T) {
	rows := Funnel(nil, models.Base)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Zero(t, r.Count)
		assert.Zero(t, r.Pct)
	}
}
