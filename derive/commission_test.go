package derive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/leadstats/models"
)

func commissionLead(code string, v float64) models.LeadRecord {
	return models.LeadRecord{AgreementCode: code, ProjectedCommission: v, CreatedDate: day(6)}
}

func TestCommissionSummary(t *testing.T) {
	leads := []models.LeadRecord{
		commissionLead("PREF REC", 100),
		commissionLead("PREF REC", 200),
		commissionLead("PREF REC", 300),
		commissionLead("PREF REC", 400),
		commissionLead("PREF REC", 500),
	}

	rows := CommissionSummary(leads)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, 100.0, r.Min)
	assert.Equal(t, 200.0, r.Q1)
	assert.Equal(t, 300.0, r.Median)
	assert.Equal(t, 400.0, r.Q3)
	assert.Equal(t, 500.0, r.Max)
	assert.Empty(t, r.Outliers)
}

func TestCommissionSummaryInterpolates(t *testing.T) {
	leads := []models.LeadRecord{
		commissionLead("GOV PR", 10),
		commissionLead("GOV PR", 20),
		commissionLead("GOV PR", 30),
		commissionLead("GOV PR", 40),
	}
	rows := CommissionSummary(leads)
	require.Len(t, rows, 1)
	assert.InDelta(t, 17.5, rows[0].Q1, 1e-9)
	assert.InDelta(t, 25.0, rows[0].Median, 1e-9)
	assert.InDelta(t, 32.5, rows[0].Q3, 1e-9)
}

func TestCommissionSummaryOutliers(t *testing.T) {
	leads := []models.LeadRecord{
		commissionLead("PREF REC", 100),
		commissionLead("PREF REC", 110),
		commissionLead("PREF REC", 120),
		commissionLead("PREF REC", 130),
		commissionLead("PREF REC", 5000),
	}
	rows := CommissionSummary(leads)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Outliers, 1)
	assert.Equal(t, 5000.0, rows[0].Outliers[0])
}

func TestCommissionSummarySkipsNaNAndSortsByCode(t *testing.T) {
	leads := []models.LeadRecord{
		commissionLead("ZZ", 50),
		commissionLead("AA", math.NaN()),
		commissionLead("AA", 10),
	}
	rows := CommissionSummary(leads)
	require.Len(t, rows, 2)
	assert.Equal(t, "AA", rows[0].AgreementCode)
	assert.Equal(t, 10.0, rows[0].Min)
	assert.Equal(t, 10.0, rows[0].Max, "NaN cells excluded from the distribution")
	assert.Equal(t, "ZZ", rows[1].AgreementCode)
}

func TestCommissionSummaryAllNaNGroupOmitted(t *testing.T) {
	leads := []models.LeadRecord{commissionLead("AA", math.NaN())}
	assert.Empty(t, CommissionSummary(leads))
}
