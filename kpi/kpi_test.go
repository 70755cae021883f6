package kpi

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lfarias/leadstats/models"
)

func leadsScenario() []models.LeadRecord {
	// 10 leads over 5 business days, 3 of them paid.
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	var leads []models.LeadRecord
	for i := 0; i < 10; i++ {
		l := models.LeadRecord{CreatedDate: day(6 + i%5), CommissionValue: math.NaN()}
		if i < 3 {
			l.Stage = models.StagePaid
			l.CommissionValue = 100
		}
		leads = append(leads, l)
	}
	return leads
}

func TestComputeScenario(t *testing.T) {
	leads := leadsScenario()
	base := NewBaseline(leads)

	s := Compute(base, leads, 0, 5)
	assert.Equal(t, 10, s.TotalLeads)
	assert.Equal(t, 2.0, s.AvgLeadsPerDay)
	assert.Equal(t, 30.0, s.ConversionRate)
	assert.Equal(t, 30.0, s.BaselineConversion)
	assert.Equal(t, 0.0, s.ConversionDelta)
	assert.Equal(t, 300.0, s.TotalGenerated)
}

func TestComputeEmptyFilteredSet(t *testing.T) {
	leads := leadsScenario()
	base := NewBaseline(leads)

	s := Compute(base, nil, 12.5, 0)
	assert.Equal(t, 0, s.TotalLeads)
	assert.Equal(t, 0.0, s.AvgLeadsPerDay, "zero included days reports 0, not NaN")
	assert.False(t, math.IsNaN(s.ConversionRate), "epsilon substitution keeps the rate finite")
	assert.Equal(t, 0.0, s.ConversionRate)
	assert.Equal(t, -12.5, s.GrossProfit, "gross profit degrades to -spend")
	assert.Equal(t, "R$ -12,50", s.GrossProfitBRL)
}

func TestComputeEmptyBaseline(t *testing.T) {
	s := Compute(Baseline{}, nil, 0, 0)
	assert.False(t, math.IsNaN(s.BaselineConversion))
	assert.False(t, math.IsNaN(s.ConversionDelta))
}

func TestComputeRoundsGeneratedTotal(t *testing.T) {
	leads := []models.LeadRecord{
		{Stage: models.StagePaid, CommissionValue: 10.004},
		{Stage: models.StagePaid, CommissionValue: 20.003},
	}
	s := Compute(Baseline{TotalLeads: 2, PaidLeads: 2}, leads, 0, 1)
	assert.Equal(t, 30.01, s.TotalGenerated, "currency scalars carry two decimals")
	assert.Equal(t, "R$ 30,01", s.TotalGeneratedBRL)
}

func TestComputeNaNSpendTreatedAsZero(t *testing.T) {
	s := Compute(Baseline{TotalLeads: 1}, nil, math.NaN(), 1)
	assert.Equal(t, 0.0, s.TotalSpend)
	assert.Equal(t, 0.0, s.GrossProfit)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{4.8, "R$ 4,80"},
		{1234.56, "R$ 1.234,56"},
		{1234567.8, "R$ 1.234.567,80"},
		{-987.65, "R$ -987,65"},
		{-1234.5, "R$ -1.234,50"},
		{math.NaN(), "R$ 0,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.in), "value %v", tt.in)
	}
}
