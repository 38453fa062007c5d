package rwsclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/RassulYunussov/rwsclient/internal/cb"
	"github.com/RassulYunussov/rwsclient/internal/resilient"
	"github.com/RassulYunussov/rwsclient/requests"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type connectionParameters struct {
	credentials              *Credentials
	timeout                  time.Duration
	retryParameters          *resilient.RetryParameters
	circuitBreakerParameters *cb.CircuitBreakerParameters
	rateLimitParameters      *rateLimitParameters
	httpClient               *http.Client
	logger                   zerolog.Logger
	registerer               prometheus.Registerer
	userAgent                string
}

type rateLimitParameters struct {
	rps   float64
	burst int
}

type sendParameters struct {
	timeout         time.Duration
	retryParameters *resilient.RetryParameters
}

// circuit breakers and metrics are keyed by method and operation
func getResource(spec requests.Spec) string {
	return spec.Method() + "_" + spec.Name()
}

// breaker and limiter refusals happen before any request is sent; retrying them only waits
func isPermanent(err error) bool {
	return cb.IsRejected(err) || errors.Is(err, ErrRateLimited)
}
