// Package metrics is a small backend-agnostic layer for recording
// operational metrics from the pipeline. It mirrors the storage abstraction:
// the rest of the code calls the package-level helpers, a pluggable Backend
// does the actual recording, and the default backend is a no-op so
// instrumentation is always safe to call.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal surface a metrics system must provide.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes collected metrics if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures one pipeline stage: latency plus a success/failure
// counter.
func RecordStage(stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"stage": stage, "status": status}
	backend.IncCounter("etl_stage_total", 1, lbls)
	backend.ObserveDuration("etl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for a table and kind.
//
// Kinds mirror the transform and load counters, e.g. "read", "kept",
// "orphaned", "inserted".
func RecordRows(table, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_rows_total", float64(delta), Labels{
		"table": table,
		"kind":  kind,
	})
}
