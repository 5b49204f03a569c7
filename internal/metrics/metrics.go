// Package metrics exposes Prometheus metrics for the visitor store.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// Outcome labels.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  prometheus.Histogram
}

// New creates a registry with the store collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vms",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Visitor store calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vms",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Visitor store call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		records: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vms",
			Subsystem: "store",
			Name:      "fetched_records",
			Help:      "Records returned per fetch.",
			Buckets:   []float64{0, 1, 10, 100, 1000, 5000},
		}),
	}
	m.registry.MustRegister(
		m.ops,
		m.duration,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.ops.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	var ve *visitor.ValidationError
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &ve):
		return outcomeInvalid
	}
	return outcomeError
}

// InstrumentedStore counts and times the calls of the store it wraps.
type InstrumentedStore struct {
	next    visitor.Store
	metrics *Metrics
}

// Instrument wraps store.
func (m *Metrics) Instrument(store visitor.Store) *InstrumentedStore {
	return &InstrumentedStore{next: store, metrics: m}
}

func (s *InstrumentedStore) Fetch(ctx context.Context, q visitor.Query) ([]*visitor.Record, error) {
	start := time.Now()
	records, err := s.next.Fetch(ctx, q)
	s.metrics.observe("fetch", start, err)
	if err == nil {
		s.metrics.records.Observe(float64(len(records)))
	}
	return records, err
}

func (s *InstrumentedStore) Insert(ctx context.Context, rec *visitor.NewRecord) (int64, error) {
	start := time.Now()
	id, err := s.next.Insert(ctx, rec)
	s.metrics.observe("insert", start, err)
	return id, err
}
