package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics tracks report generation, imports and workflow transitions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ReportsGenerated  *prometheus.CounterVec
	ReportFailures    *prometheus.CounterVec
	RenderDuration    *prometheus.HistogramVec
	ImportRows        *prometheus.CounterVec
	Imports           *prometheus.CounterVec
	ImportDuration    prometheus.Histogram
	WorkflowSteps     *prometheus.CounterVec
	AggregateDuration prometheus.Histogram
}

// New registers every metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReportsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coop_reports_generated_total",
			Help: "Documents rendered and stored, by report type",
		}, []string{"report_type"}),
		ReportFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coop_report_failures_total",
			Help: "Per-type report failures, by report type and stage",
		}, []string{"report_type", "stage"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coop_report_render_duration_seconds",
			Help:    "Duration of a single template render",
			Buckets: durationBuckets,
		}, []string{"report_type"}),
		ImportRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coop_import_rows_total",
			Help: "Spreadsheet rows processed by the member import, by outcome",
		}, []string{"outcome"}),
		Imports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coop_imports_total",
			Help: "Member imports, by result (committed, rejected, failed)",
		}, []string{"result"}),
		ImportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coop_import_duration_seconds",
			Help:    "Duration of member imports",
			Buckets: durationBuckets,
		}),
		WorkflowSteps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coop_workflow_steps_total",
			Help: "Loan workflow steps committed, by step",
		}, []string{"step"}),
		AggregateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coop_aggregate_duration_seconds",
			Help:    "Duration of report context assembly",
			Buckets: durationBuckets,
		}),
	}
}

func (m *Metrics) ReportGenerated(reportType string) {
	if m == nil {
		return
	}
	m.ReportsGenerated.WithLabelValues(reportType).Inc()
}

// ReportFailed records a failure at stage ("render", "store", "ledger").
func (m *Metrics) ReportFailed(reportType, stage string) {
	if m == nil {
		return
	}
	m.ReportFailures.WithLabelValues(reportType, stage).Inc()
}

// ObserveRender records a render duration. Call with time.Now() at the start.
func (m *Metrics) ObserveRender(reportType string, start time.Time) {
	if m == nil {
		return
	}
	m.RenderDuration.WithLabelValues(reportType).Observe(time.Since(start).Seconds())
}

// ImportFinished records row outcomes, the import result and its duration.
// Row counters only move for committed imports.
func (m *Metrics) ImportFinished(result string, created, updated, skipped int, start time.Time) {
	if m == nil {
		return
	}
	m.Imports.WithLabelValues(result).Inc()
	if result == "committed" {
		m.ImportRows.WithLabelValues("created").Add(float64(created))
		m.ImportRows.WithLabelValues("updated").Add(float64(updated))
		m.ImportRows.WithLabelValues("skipped").Add(float64(skipped))
	}
	m.ImportDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) WorkflowStep(step string) {
	if m == nil {
		return
	}
	m.WorkflowSteps.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveAggregate(start time.Time) {
	if m == nil {
		return
	}
	m.AggregateDuration.Observe(time.Since(start).Seconds())
}
