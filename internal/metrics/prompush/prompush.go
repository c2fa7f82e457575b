// Package prompush adapts the metrics.Backend interface to a Prometheus
// Pushgateway. All Prometheus-specific code lives here; the pipeline itself
// only talks to the metrics package. Metrics are collected in a private
// registry and pushed once per run via Flush, which suits a batch job better
// than a scrape endpoint.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"salesetl/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // etl_stage_total
	stageDuration *prometheus.SummaryVec // etl_stage_duration_seconds
	rowCounter    *prometheus.CounterVec // etl_rows_total
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway grouping key; gatewayURL is the base URL of the server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "sales_etl"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_stage_total",
			Help: "Pipeline stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "etl_stage_duration_seconds",
			Help:       "Pipeline stage duration in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_rows_total",
			Help: "Row-level counts per table and kind (read, kept, orphaned, inserted).",
		},
		[]string{"table", "kind"},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, rowCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "etl_stage_total":
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)
	case "etl_rows_total":
		b.rowCounter.WithLabelValues(labels["table"], labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, value float64, labels metrics.Labels) {
	if name != "etl_stage_duration_seconds" {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
