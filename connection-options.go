package rwsclient

import (
	"net/http"
	"time"

	"github.com/RassulYunussov/rwsclient/internal/cb"
	"github.com/RassulYunussov/rwsclient/internal/resilient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Option func(*connectionParameters) *connectionParameters

// Attach HTTP Basic credentials to requests that require authorization
func WithCredentials(username, password string) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.credentials = &Credentials{Username: username, Password: password}
		return c
	}
}

// Default per-attempt timeout; zero means none
func WithTimeout(timeout time.Duration) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.timeout = timeout
		return c
	}
}

// Retry transport failures up to maxRetry times.
// A non-zero backoffTimeout adds a linearly growing, jittered delay between attempts.
func WithRetry(maxRetry uint8, backoffTimeout time.Duration) Option {
	return func(c *connectionParameters) *connectionParameters {
		retryParameters := new(resilient.RetryParameters)
		retryParameters.MaxRetry = maxRetry
		retryParameters.BackoffTimeout = backoffTimeout
		c.retryParameters = retryParameters
		return c
	}
}

// Apply a circuit breaker per operation.
// Only transport failures count; any HTTP response is a success for the breaker.
// https://github.com/sony/gobreaker
func WithCircuitBreaker(maxRequests uint32,
	consecutiveFailures uint32,
	interval time.Duration,
	timeout time.Duration) Option {
	return func(c *connectionParameters) *connectionParameters {
		circuitBreakerParameters := new(cb.CircuitBreakerParameters)
		circuitBreakerParameters.MaxRequests = maxRequests
		circuitBreakerParameters.ConsecutiveFailures = consecutiveFailures
		circuitBreakerParameters.Interval = interval
		circuitBreakerParameters.Timeout = timeout
		c.circuitBreakerParameters = circuitBreakerParameters
		return c
	}
}

// Limit outgoing attempts to rps per second with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *connectionParameters) *connectionParameters {
		if rps <= 0 {
			c.rateLimitParameters = nil
			return c
		}
		c.rateLimitParameters = &rateLimitParameters{rps: rps, burst: burst}
		return c
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.logger = logger
		return c
	}
}

// Record request metrics with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.registerer = reg
		return c
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.httpClient = client
		return c
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *connectionParameters) *connectionParameters {
		c.userAgent = userAgent
		return c
	}
}

type SendOption func(*sendParameters) *sendParameters

// Timeout overrides the connection's per-attempt timeout for one call
func Timeout(timeout time.Duration) SendOption {
	return func(s *sendParameters) *sendParameters {
		s.timeout = timeout
		return s
	}
}

// Retries overrides the connection's retry count for one call, keeping its backoff
func Retries(retries uint8) SendOption {
	return func(s *sendParameters) *sendParameters {
		retryParameters := new(resilient.RetryParameters)
		if s.retryParameters != nil {
			*retryParameters = *s.retryParameters
		}
		retryParameters.MaxRetry = retries
		s.retryParameters = retryParameters
		return s
	}
}
