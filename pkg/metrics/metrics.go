// Package metrics exposes Prometheus instruments for the chat pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travelbot"

const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeFailure = "failure"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry     *prometheus.Registry
	turns        *prometheus.CounterVec
	toolCalls    *prometheus.CounterVec
	turnDuration prometheus.Histogram
	memoryWrites *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Processed chat turns by outcome.",
		}, []string{"outcome"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool dispatches by tool and outcome.",
		}, []string{"tool", "outcome"}),
		turnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Wall time of a chat turn.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
		memoryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memory_writes_total",
			Help:      "Conversation memory write-backs by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.turns,
		m.toolCalls,
		m.turnDuration,
		m.memoryWrites,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Turn(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(outcome).Inc()
	m.turnDuration.Observe(took.Seconds())
}

func (m *Metrics) ToolCall(tool string, failed bool) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if failed {
		outcome = OutcomeError
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
}

func (m *Metrics) MemoryWrite(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.memoryWrites.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
