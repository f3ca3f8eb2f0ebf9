package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// Outcome labels for tool invocations
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeOperationError  = "operation_error"
)

// Metrics records tool invocation telemetry. A nil *Metrics is a no-op.
type Metrics struct {
	invocations       *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordingFailures prometheus.Counter
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolhub_tool_invocations_total",
				Help: "Total number of tool invocations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolhub_tool_operation_duration_seconds",
				Help:    "Duration of tool operations in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),
		recordingFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "toolhub_usage_recording_failures_total",
				Help: "Total number of usage increments that failed after a successful invocation",
			},
		),
	}
}

func (m *Metrics) ObserveInvocation(kind types.ToolKind, outcome string) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(kind.String(), outcome).Inc()
}

func (m *Metrics) ObserveOperation(kind types.ToolKind, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordingFailed() {
	if m == nil {
		return
	}
	m.recordingFailures.Inc()
}
