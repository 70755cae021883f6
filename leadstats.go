// Package leadstats turns a CRM lead export and a spend ledger into the
// derived tables and scalar KPIs behind a lead-generation report. The
// pipeline is a pure single-pass recomputation: normalize once per upload,
// then filter, aggregate and derive in full on every Run. Rendering, upload
// mechanics and persistence belong to the embedding application.
package leadstats

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lfarias/leadstats/derive"
	"github.com/lfarias/leadstats/filter"
	"github.com/lfarias/leadstats/ingest"
	"github.com/lfarias/leadstats/internal/config"
	"github.com/lfarias/leadstats/internal/obs"
	"github.com/lfarias/leadstats/internal/store"
	"github.com/lfarias/leadstats/kpi"
	"github.com/lfarias/leadstats/models"
	"github.com/lfarias/leadstats/schema"
)

var (
	// ErrNoUpload means Run was called before any dataset was loaded.
	ErrNoUpload = errors.New("no dataset loaded")
	// ErrMissingDataset means an upload lacked the lead or the spend file.
	ErrMissingDataset = errors.New("upload needs one hubspot and one gasto dataset")
)

// Source is one uploaded file: the ingestion layer hands over the name (for
// dataset routing) and the raw bytes.
type Source struct {
	Name string
	R    io.Reader
}

// Options tunes one Run. Zero values fall back to the configured defaults.
type Options struct {
	TopN        int          // ranked-table cut, clamped to [5, 40]
	CohortStage models.Stage // target event column of the cohort matrix
}

// Report is everything one pass produces, row-ordered and render-ready.
// Cohort, CAC and ROI are only populated for extended-schema uploads.
type Report struct {
	DatasetID uuid.UUID
	KPIs      kpi.Summary

	Spend            []derive.SpendRow
	LeadsByAgreement []derive.AgreementCount
	LeadsByDay       []derive.DayCount
	DayTotals        []derive.DayTotal
	LossByAgreement  derive.LossTable
	TopLossReasons   []derive.LossRow
	Commission       []derive.CommissionRow
	Funnel           []derive.FunnelRow
	Channels         []derive.ChannelRow

	Cohort *derive.CohortMatrix
	CAC    []derive.CACRow
	ROI    []derive.ROIRow
}

type Pipeline struct {
	cfg     config.Config
	log     *slog.Logger
	session *store.Session
	met     *obs.Metrics
}

// New builds a pipeline. log defaults to a JSON logger on stdout; reg may be
// nil when the embedding application does not scrape metrics.
func New(log *slog.Logger, reg prometheus.Registerer) *Pipeline {
	cfg := config.FromEnv()
	if log == nil {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}
	return &Pipeline{
		cfg:     cfg,
		log:     log,
		session: store.NewSession(),
		met:     obs.New(reg),
	}
}

// Load replaces the session with a fresh upload. Sources are routed by the
// filename convention ("hubspot" = leads, "gasto" = spend); both datasets
// must be present. Row-level garbage degrades in place and never fails the
// upload.
func (p *Pipeline) Load(version models.SchemaVersion, sources ...Source) (uuid.UUID, error) {
	var leadTable, spendTable *ingest.Table
	for _, src := range sources {
		kind := ingest.KindOf(src.Name)
		if kind == ingest.KindUnknown {
			p.log.Warn("unrecognized dataset, skipping", slog.String("name", src.Name))
			continue
		}
		t, err := ingest.ReadTable(src.Name, src.R, p.log)
		if err != nil {
			return uuid.Nil, fmt.Errorf("load %s: %w", src.Name, err)
		}
		if kind == ingest.KindLeads {
			leadTable = t
		} else {
			spendTable = t
		}
	}
	if leadTable == nil || spendTable == nil {
		return uuid.Nil, ErrMissingDataset
	}

	leads, badLeads := schema.ParseLeads(leadTable, version, p.log)
	spend, badSpend := schema.ParseSpend(spendTable, version, p.log)
	p.met.RowsParsed.WithLabelValues("leads").Add(float64(len(leads)))
	p.met.RowsParsed.WithLabelValues("spend").Add(float64(len(spend)))
	p.met.ParseFailures.WithLabelValues("leads").Add(float64(badLeads))
	p.met.ParseFailures.WithLabelValues("spend").Add(float64(badSpend))

	id := p.session.Replace(version, leads, spend, kpi.NewBaseline(leads))
	p.log.Info("upload normalized",
		slog.String("dataset_id", id.String()),
		slog.String("schema", version.String()),
		slog.Int("leads", len(leads)),
		slog.Int("spend_rows", len(spend)))
	return id, nil
}

// Run executes one full recomputation pass for a filter state. The result is
// a pure function of (normalized tables, fctx, opts); an empty filtered set
// yields a well-formed zero report, never an error.
func (p *Pipeline) Run(fctx filter.Context, opts Options) (*Report, error) {
	snap, ok := p.session.View()
	if !ok {
		return nil, ErrNoUpload
	}
	start := time.Now()

	topN := p.cfg.TopN
	if opts.TopN != 0 {
		topN = config.ClampTopN(opts.TopN)
	}
	cohortStage := opts.CohortStage
	if cohortStage == "" {
		cohortStage = models.StagePaid
	}

	ectx := filter.Resolve(fctx, snap.Leads)
	leads := ectx.Leads(snap.Leads)
	spend := ectx.Spend(snap.Spend)

	breakdown := derive.SpendBreakdown(spend)

	r := &Report{
		DatasetID:        snap.ID,
		KPIs:             kpi.Compute(snap.Baseline, leads, derive.TotalSpend(breakdown), ectx.IncludedDays),
		Spend:            breakdown,
		LeadsByAgreement: derive.LeadsByAgreement(leads),
		LossByAgreement:  derive.LossByAgreement(leads, len(leads)),
		TopLossReasons:   derive.TopLossReasons(leads, len(leads)),
		Commission:       derive.CommissionSummary(leads),
		Funnel:           derive.Funnel(leads, snap.Version),
		Channels:         derive.ChannelSummary(leads, spend),
	}
	r.LeadsByDay, r.DayTotals = derive.LeadsByDay(leads)

	if snap.Version == models.Extended {
		cohort := derive.Cohort(leads, cohortStage)
		r.Cohort = &cohort
		r.CAC = derive.CAC(leads, spend, topN)
		r.ROI = derive.ROI(leads, spend, topN)
	}

	p.met.Runs.Inc()
	p.met.RunDuration.Observe(time.Since(start).Seconds())
	p.log.Info("pass complete",
		slog.String("dataset_id", snap.ID.String()),
		slog.Int("filtered_leads", len(leads)),
		slog.Int("included_days", ectx.IncludedDays),
		slog.Duration("elapsed", time.Since(start)))
	return r, nil
}
