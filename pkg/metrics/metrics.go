// Package metrics records report-run statistics in a Prometheus
// registry and writes them in the node_exporter textfile format, so CI
// jobs can publish finding counts without running a server.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scanreport/scanreport/pkg/aggregate"
	"github.com/scanreport/scanreport/pkg/finding"
)

// Chart outcomes for the charts_total counter.
const (
	ChartRendered = "rendered"
	ChartSkipped  = "skipped"
)

// Recorder holds the metrics of one run.
type Recorder struct {
	registry *prometheus.Registry

	findings *prometheus.GaugeVec
	rows     *prometheus.GaugeVec
	charts   *prometheus.CounterVec
	duration *prometheus.GaugeVec
	lastRun  *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.findings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scanreport_findings",
			Help: "Number of normalized findings per category",
		},
		[]string{"tool", "table", "category"},
	)
	r.rows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scanreport_table_rows",
			Help: "Number of rows in each findings table",
		},
		[]string{"tool", "table"},
	)
	r.charts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanreport_charts_total",
			Help: "Charts processed, by outcome",
		},
		[]string{"tool", "outcome"},
	)
	r.duration = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scanreport_run_duration_seconds",
			Help: "Wall time of the last report run",
		},
		[]string{"tool"},
	)
	r.lastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scanreport_last_run_timestamp_seconds",
			Help: "Unix time the last report was written",
		},
		[]string{"tool"},
	)

	for _, c := range []prometheus.Collector{r.findings, r.rows, r.charts, r.duration, r.lastRun} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveTable records row and per-category counts of set.
func (r *Recorder) ObserveTable(tool, table string, set finding.FindingSet) {
	r.rows.WithLabelValues(tool, table).Set(float64(set.Len()))
	agg, err := aggregate.Count(set, aggregate.Spec{GroupBy: finding.ColumnCategory})
	if err != nil {
		return
	}
	for _, b := range agg.Buckets {
		r.findings.WithLabelValues(tool, table, b.Key).Set(float64(b.Count))
	}
}

// ObserveChart counts one chart as rendered or skipped.
func (r *Recorder) ObserveChart(tool string, rendered bool) {
	outcome := ChartSkipped
	if rendered {
		outcome = ChartRendered
	}
	r.charts.WithLabelValues(tool, outcome).Inc()
}

// ObserveRun records the duration and completion time of a run.
func (r *Recorder) ObserveRun(tool string, d time.Duration, at time.Time) {
	r.duration.WithLabelValues(tool).Set(d.Seconds())
	r.lastRun.WithLabelValues(tool).Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics to path atomically in the textfile
// collector format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
