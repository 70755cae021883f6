package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/leadstats/models"
)

func cohortLead(entered, paid int) models.LeadRecord {
	l := models.LeadRecord{EnteredLead: day(entered), CreatedDate: day(entered)}
	if paid > 0 {
		l.EnteredPaid = day(paid)
	}
	return l
}

func TestCohort(t *testing.T) {
	leads := []models.LeadRecord{
		cohortLead(6, 6),  // offset 0
		cohortLead(6, 8),  // offset 2
		cohortLead(6, 8),  // offset 2
		cohortLead(6, 0),  // never paid: counts toward size only
		cohortLead(7, 10), // offset 3
	}

	m := Cohort(leads, models.StagePaid)
	require.Equal(t, []int{0, 2, 3}, m.Offsets, "offsets ascend")
	require.Len(t, m.Dates, 2)
	assert.Equal(t, day(7), m.Dates[0], "cohort rows descend by date")
	assert.Equal(t, day(6), m.Dates[1])
	assert.Equal(t, []int{1, 4}, m.Sizes)

	// Day-7 cohort: one lead, paid at offset 3.
	assert.Equal(t, []float64{0, 0, 100}, m.Values[0])
	// Day-6 cohort of four: 25% at offset 0, 50% at offset 2.
	assert.Equal(t, []float64{25, 50, 0}, m.Values[1])
}

func TestCohortRowNormalization(t *testing.T) {
	leads := []models.LeadRecord{
		cohortLead(6, 6),
		cohortLead(6, 7),
		cohortLead(6, 9),
		cohortLead(6, 0),
	}
	m := Cohort(leads, models.StagePaid)
	require.Len(t, m.Values, 1)

	sum := 0.0
	for _, v := range m.Values[0] {
		sum += v
	}
	// Three of four leads converted: the row sums to 75%.
	assert.InDelta(t, 75.0, sum, 0.01)
}

func TestCohortFallsBackToCreationDate(t *testing.T) {
	leads := []models.LeadRecord{
		{CreatedDate: day(6), EnteredPaid: day(7)}, // base schema: no entry dates
	}
	m := Cohort(leads, models.StagePaid)
	require.Len(t, m.Dates, 1)
	assert.Equal(t, day(6), m.Dates[0])
	assert.Equal(t, []int{1}, m.Offsets)
}

func TestCohortSkipsUndatedLeads(t *testing.T) {
	leads := []models.LeadRecord{{EnteredPaid: day(7)}}
	m := Cohort(leads, models.StagePaid)
	assert.Empty(t, m.Dates)
	assert.Empty(t, m.Offsets)
}

func TestCohortOtherTargetStage(t *testing.T) {
	leads := []models.LeadRecord{
		{EnteredLead: day(6), EnteredNegotiation: day(8)},
		{EnteredLead: day(6)},
	}
	m := Cohort(leads, models.StageNegotiation)
	require.Len(t, m.Values, 1)
	assert.Equal(t, []float64{50}, m.Values[0])
}
