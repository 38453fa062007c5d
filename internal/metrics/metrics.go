package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rwsclient"

// Outcomes of one Send call.
const (
	OutcomeSuccess        = "success"
	OutcomeServiceError   = "service_error"
	OutcomeTransportError = "transport_error"
)

// Metrics holds the Prometheus collectors for one registry.
// A nil *Metrics records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AttemptsTotal   *prometheus.CounterVec
	ServiceErrors   *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg, reusing any already registered there
// so several connections can share one registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of service calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		)),
		RequestDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Wall clock time of a call across all attempts",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
			},
			[]string{"operation"},
		)),
		AttemptsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attempts_total",
				Help:      "Total number of HTTP attempts, retries included",
			},
			[]string{"operation"},
		)),
		ServiceErrors: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_errors_total",
				Help:      "Classified service errors by operation and body shape",
			},
			[]string{"operation", "kind"},
		)),
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return collector
}

// Observe records one finished call.
func (m *Metrics) Observe(operation, outcome string, elapsed time.Duration, attempts int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.AttemptsTotal.WithLabelValues(operation).Add(float64(attempts))
}

// ObserveServiceError records the body shape of a classified failure.
func (m *Metrics) ObserveServiceError(operation, kind string) {
	if m == nil {
		return
	}
	m.ServiceErrors.WithLabelValues(operation, kind).Inc()
}
