// Package filter applies the user-selected dimension and date filters to the
// normalized lead and spend tables. Selections are AND-combined across
// dimensions; within a dimension any selected value matches.
package filter

import (
	"github.com/samber/lo"

	"github.com/lfarias/leadstats/calendar"
	"github.com/lfarias/leadstats/models"
)

// Context is one render's filter state. An empty selection for a dimension
// means "every value currently present in the unfiltered table", resolved
// once by Resolve, not cached across uploads.
type Context struct {
	Sellers    []string
	Products   []string
	Agreements []string // agreement codes
	Stages     []string
	Channels   []string
	Teams      []string // extended schema only

	Range            calendar.Range
	BusinessDaysOnly bool
}

// Effective is a fully resolved Context: every dimension holds a concrete
// value set and the included-day set is materialized.
type Effective struct {
	sellers    map[string]struct{}
	products   map[string]struct{}
	agreements map[string]struct{}
	stages     map[string]struct{}
	channels   map[string]struct{}
	teams      map[string]struct{}

	days calendar.DaySet

	Range            calendar.Range
	BusinessDaysOnly bool
	IncludedDays     int
}

// Resolve materializes a Context against the unfiltered lead table: empty
// selections become the table's distinct values, and the calendar day set is
// computed from the range and the business-days flag.
func Resolve(ctx Context, leads []models.LeadRecord) Effective {
	days := calendar.Days(ctx.Range, ctx.BusinessDaysOnly)
	return Effective{
		sellers:    pick(ctx.Sellers, leads, func(l models.LeadRecord) string { return l.Seller }),
		products:   pick(ctx.Products, leads, func(l models.LeadRecord) string { return l.Product }),
		agreements: pick(ctx.Agreements, leads, func(l models.LeadRecord) string { return l.AgreementCode }),
		stages:     pick(ctx.Stages, leads, func(l models.LeadRecord) string { return string(l.Stage) }),
		channels:   pick(ctx.Channels, leads, func(l models.LeadRecord) string { return l.Channel }),
		teams:      pick(ctx.Teams, leads, func(l models.LeadRecord) string { return l.Team }),
		days:       calendar.NewDaySet(days),

		Range:            ctx.Range,
		BusinessDaysOnly: ctx.BusinessDaysOnly,
		IncludedDays:     len(days),
	}
}

// Leads returns the filtered lead view: all five dimensions AND the calendar.
func (e Effective) Leads(leads []models.LeadRecord) []models.LeadRecord {
	out := make([]models.LeadRecord, 0, len(leads))
	for _, l := range leads {
		if !e.days.Contains(l.CreatedDate) {
			continue
		}
		if !has(e.sellers, l.Seller) || !has(e.products, l.Product) ||
			!has(e.agreements, l.AgreementCode) || !has(e.stages, string(l.Stage)) ||
			!has(e.channels, l.Channel) || !has(e.teams, l.Team) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Spend returns the filtered spend view. The spend table is filtered with the
// same selected values as the lead table for the shared dimensions, so a
// spend row whose agreement/product/channel never occurs among the leads is
// implicitly dropped (the two tables share a controlled vocabulary).
func (e Effective) Spend(spend []models.SpendRecord) []models.SpendRecord {
	out := make([]models.SpendRecord, 0, len(spend))
	for _, s := range spend {
		if !e.days.Contains(s.Date) {
			continue
		}
		if !has(e.agreements, s.Agreement) || !has(e.products, s.Product) ||
			!has(e.channels, s.Channel) {
			continue
		}
		// The base ledger has no team column; only filter on it when present.
		if s.Team != "" && !has(e.teams, s.Team) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// pick resolves one dimension's selection: explicit values win, an empty
// selection selects every distinct value of the unfiltered table.
func pick(selected []string, leads []models.LeadRecord, dim func(models.LeadRecord) string) map[string]struct{} {
	if len(selected) == 0 {
		selected = lo.Uniq(lo.Map(leads, func(l models.LeadRecord, _ int) string { return dim(l) }))
	}
	set := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
