// Package kpi computes the scalar summary metrics of a pipeline pass. Every
// division site carries its own guard: conversion denominators substitute a
// 0.1 epsilon, the per-day average reports 0 when no day is included.
package kpi

import (
	"math"

	"github.com/lfarias/leadstats/models"
)

// Baseline is captured from the unfiltered lead table at upload time and
// anchors the conversion-rate delta.
type Baseline struct {
	TotalLeads int
	PaidLeads  int
}

func NewBaseline(leads []models.LeadRecord) Baseline {
	b := Baseline{TotalLeads: len(leads)}
	for _, l := range leads {
		if l.Stage == models.StagePaid {
			b.PaidLeads++
		}
	}
	return b
}

// Summary is the fixed KPI set of one pass. Currency values come in numeric
// and pre-formatted pairs; the presentation layer renders them verbatim.
type Summary struct {
	TotalLeads     int
	AvgLeadsPerDay float64

	ConversionRate     float64 // filtered, percent
	BaselineConversion float64 // unfiltered, percent
	ConversionDelta    float64

	TotalGenerated float64
	TotalSpend     float64
	GrossProfit    float64

	TotalGeneratedBRL string
	TotalSpendBRL     string
	GrossProfitBRL    string
}

// convEpsilon replaces a zero conversion denominator. This is a deliberate
// epsilon-substitution policy: the degenerate rate stays finite instead of
// raising, it is not a true zero-handling rule.
const convEpsilon = 0.1

// Compute derives the KPI set from the filtered view, the upload baseline,
// the already-aggregated spend total and the included-day count.
func Compute(base Baseline, filtered []models.LeadRecord, totalSpend float64, includedDays int) Summary {
	total := len(filtered)
	paid := 0
	commissions := make([]float64, 0, len(filtered))
	for _, l := range filtered {
		if l.Stage == models.StagePaid {
			paid++
		}
		commissions = append(commissions, l.CommissionValue)
	}

	den := float64(total)
	if den == 0 {
		den = convEpsilon
	}
	baseDen := float64(base.TotalLeads)
	if baseDen == 0 {
		baseDen = convEpsilon
	}

	conversion := round2(float64(paid) / den * 100)
	baseline := round2(float64(base.PaidLeads) / baseDen * 100)

	avg := 0.0
	if includedDays > 0 {
		avg = round2(float64(total) / float64(includedDays))
	}

	generated := round2(models.SumValid(commissions))
	if math.IsNaN(totalSpend) {
		totalSpend = 0
	}
	profit := round2(generated - totalSpend)

	return Summary{
		TotalLeads:         total,
		AvgLeadsPerDay:     avg,
		ConversionRate:     conversion,
		BaselineConversion: baseline,
		ConversionDelta:    round2(conversion - baseline),
		TotalGenerated:     generated,
		TotalSpend:         round2(totalSpend),
		GrossProfit:        profit,
		TotalGeneratedBRL:  FormatBRL(generated),
		TotalSpendBRL:      FormatBRL(totalSpend),
		GrossProfitBRL:     FormatBRL(profit),
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
