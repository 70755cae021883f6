package models

import (
	"math"
	"time"
)

// SchemaVersion selects which source layout was uploaded. Extended exports
// carry per-stage entry dates and a team column on the spend ledger.
type SchemaVersion int

const (
	Base SchemaVersion = iota
	Extended
)

func (v SchemaVersion) String() string {
	if v == Extended {
		return "extended"
	}
	return "base"
}

// Stage is the canonical pipeline position of a lead. Source labels outside
// the fixed vocabulary are preserved verbatim but never enter the funnel.
type Stage string

const (
	StageLead        Stage = "LEAD"
	StageNegotiation Stage = "NEGOTIATION"
	StageContracting Stage = "CONTRACTING"
	StagePaid        Stage = "PAID"
	StageLost        Stage = "LOST"
)

// FunnelOrder is the fixed rendering order for funnel stages.
var FunnelOrder = []Stage{StageLead, StageNegotiation, StageContracting, StagePaid, StageLost}

// LeadRecord is one normalized CRM deal. Zero time values mean the date is
// unknown or the stage was never entered; NaN means a money cell failed to
// parse.
type LeadRecord struct {
	ID    string
	Name  string
	TaxID string
	Phone string

	Agreement     string
	AgreementCode string
	Channel       string
	CampaignTag   string
	Seller        string
	Product       string
	Team          string

	Stage           Stage
	LossReason      string
	LossReasonGroup string

	CreatedDate  time.Time
	CreatedClock string

	EnteredLead        time.Time
	EnteredNegotiation time.Time
	EnteredContracting time.Time
	EnteredPaid        time.Time
	EnteredLost        time.Time

	ProjectedCommission float64
	CommissionValue     float64
}

// EnteredAt returns the entry date for a canonical stage (zero when the lead
// never reached it or the stage is out of vocabulary).
func (l LeadRecord) EnteredAt(s Stage) time.Time {
	switch s {
	case StageLead:
		return l.EnteredLead
	case StageNegotiation:
		return l.EnteredNegotiation
	case StageContracting:
		return l.EnteredContracting
	case StagePaid:
		return l.EnteredPaid
	case StageLost:
		return l.EnteredLost
	}
	return time.Time{}
}

// SpendRecord is one normalized spend ledger entry. UnitPrice is NaN when the
// channel has no known rate; the NaN propagates through Amount instead of
// being coerced to zero.
type SpendRecord struct {
	Date      time.Time
	Agreement string
	Product   string
	Channel   string
	Team      string
	Quantity  float64
	UnitPrice float64
}

// Amount is the derived spend for the entry.
func (s SpendRecord) Amount() float64 { return s.Quantity * s.UnitPrice }

// SumValid adds the finite values of vals, skipping NaN cells the way the
// aggregations treat missing data.
func SumValid(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}
