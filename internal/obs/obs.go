// Package obs instruments the pipeline with prometheus collectors. The
// module never exposes them over HTTP; the embedding application mounts the
// registerer it passes in.
package obs

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Runs          prometheus.Counter
	RunDuration   prometheus.Histogram
	RowsParsed    *prometheus.CounterVec
	ParseFailures *prometheus.CounterVec
}

// New builds the collector set and registers it when reg is non-nil.
// Unregistered collectors still work, so a nil registerer just means the
// numbers stay private.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadstats_pipeline_runs_total",
			Help: "Completed recomputation passes.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadstats_pipeline_run_seconds",
			Help:    "Duration of a full recomputation pass.",
			Buckets: prometheus.DefBuckets,
		}),
		RowsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadstats_rows_parsed_total",
			Help: "Rows normalized per dataset kind.",
		}, []string{"dataset"}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadstats_parse_failures_total",
			Help: "Rows or cells that degraded during normalization.",
		}, []string{"dataset"}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.RunDuration, m.RowsParsed, m.ParseFailures)
	}
	return m
}
