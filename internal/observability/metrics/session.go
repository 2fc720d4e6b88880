// Package metrics exposes Prometheus collectors for the session lifecycle and API calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	obserrors "github.com/target/frontdesk-console/internal/observability/errors"
	"github.com/target/frontdesk-console/internal/observability/statsd"
)

// Result constants for metric labels.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
)

// Session operations.
const (
	OpHydrate = "hydrate"
	OpLogin   = "login"
	OpLogout  = "logout"
	OpRefresh = "refresh"
)

// SessionMetrics tracks coordinator transitions.
type SessionMetrics struct {
	Transitions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec

	// Mirror, when set, receives every event as StatsD samples as well.
	Mirror statsd.Sink
}

// NewSessionMetrics registers the session collectors on reg.
// A nil reg uses the default registerer.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &SessionMetrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_session_transitions_total",
			Help: "Session coordinator operations by outcome",
		}, []string{"operation", "result", "error_class"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontdesk_session_operation_duration_seconds",
			Help:    "Duration of session operations including the network round trip",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"operation"}),
	}
}

// SessionEvent captures one coordinator operation for metric emission.
type SessionEvent struct {
	Operation string
	Result    string
	Duration  time.Duration
	Err       error
}

// EmitSession records ev. A nil receiver is a no-op so callers need no guard.
func (m *SessionMetrics) EmitSession(ev SessionEvent) {
	if m == nil {
		return
	}

	class := ""
	if ev.Err != nil && ev.Result == ResultError {
		class = obserrors.Classify(ev.Err)
	}
	m.Transitions.WithLabelValues(ev.Operation, ev.Result, class).Inc()

	if ev.Duration > 0 {
		m.Duration.WithLabelValues(ev.Operation).Observe(ev.Duration.Seconds())
	}

	if m.Mirror != nil {
		tags := map[string]string{"operation": ev.Operation, "result": ev.Result}
		if class != "" {
			tags["error_class"] = class
		}
		m.Mirror.Count("session.transition", 1, tags)
		if ev.Duration > 0 {
			m.Mirror.Timing("session.duration", ev.Duration, map[string]string{"operation": ev.Operation})
		}
	}
}
