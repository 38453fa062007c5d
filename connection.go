// Package rwsclient is a client for Rave Web Services.
//
// A Connection sends request descriptors built by the requests package and returns
// the raw response body of successful calls. Non-2xx responses become *ServiceError
// values and are never retried; transport failures are retried per the connection's
// retry policy and returned unchanged.
package rwsclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RassulYunussov/rwsclient/config"
	"github.com/RassulYunussov/rwsclient/internal/cb"
	"github.com/RassulYunussov/rwsclient/internal/classify"
	"github.com/RassulYunussov/rwsclient/internal/common"
	"github.com/RassulYunussov/rwsclient/internal/metrics"
	"github.com/RassulYunussov/rwsclient/internal/resilient"
	"github.com/RassulYunussov/rwsclient/internal/transport"
	"github.com/RassulYunussov/rwsclient/requests"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ServiceRoot is the fixed path segment between the base URL and every request path.
const ServiceRoot = "RaveWebServices"

// RequestIDHeader carries the per-call request ID.
const RequestIDHeader = "X-Request-ID"

// Connection is immutable after New and safe for concurrent use.
type Connection struct {
	baseURL         string
	credentials     *Credentials
	timeout         time.Duration
	retryParameters *resilient.RetryParameters
	userAgent       string
	sender          common.Sender
	limiter         *rate.Limiter
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// Get new Connection to the service at baseURL, e.g. https://innovate.mdsol.com
func New(baseURL string, opts ...Option) (*Connection, error) {
	connectionParameters := &connectionParameters{logger: zerolog.Nop()}
	for _, o := range opts {
		connectionParameters = o(connectionParameters)
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	var sender common.Sender = transport.CreateHttpTransport(connectionParameters.httpClient)
	if connectionParameters.circuitBreakerParameters != nil {
		sender = cb.CreateCircuitBreakerSender(sender, connectionParameters.circuitBreakerParameters)
	}
	connection := &Connection{
		baseURL:         base,
		credentials:     connectionParameters.credentials,
		timeout:         connectionParameters.timeout,
		retryParameters: connectionParameters.retryParameters,
		userAgent:       connectionParameters.userAgent,
		sender:          sender,
		logger:          connectionParameters.logger,
	}
	if p := connectionParameters.rateLimitParameters; p != nil {
		connection.limiter = rate.NewLimiter(rate.Limit(p.rps), max(p.burst, 1))
	}
	if connectionParameters.registerer != nil {
		connection.metrics = metrics.NewMetrics(connectionParameters.registerer)
	}
	return connection, nil
}

// NewFromConfig builds a Connection from loaded configuration.
// Metrics, when enabled, are registered with prometheus.DefaultRegisterer.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger) (*Connection, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithRetry(uint8(cfg.Retries), cfg.RetryBackoff),
		WithUserAgent(cfg.UserAgent),
		WithLogger(logger),
	}
	if cfg.HasCredentials() {
		opts = append(opts, WithCredentials(cfg.Username, cfg.Password))
	}
	if breaker := cfg.CircuitBreaker; breaker.Enabled {
		opts = append(opts, WithCircuitBreaker(breaker.MaxRequests, breaker.ConsecutiveFailures, breaker.Interval, breaker.Timeout))
	}
	if cfg.RateLimit.RPS > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, WithMetrics(prometheus.DefaultRegisterer))
	}
	return New(cfg.BaseURL, opts...)
}

// BaseURL returns the service address without the service root.
func (c *Connection) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute address a request is sent to.
func (c *Connection) URL(spec requests.Spec) string {
	return c.baseURL + "/" + ServiceRoot + "/" + spec.URLPath()
}

// Send dispatches a request and blocks until a response or a final transport failure.
// The returned Result is never nil: timing and attempts are recorded on failures too.
// Errors are a *ServiceError for non-2xx responses, ErrMissingCredentials, or the
// transport failure of the last attempt.
func (c *Connection) Send(ctx context.Context, spec requests.Spec, opts ...SendOption) (*Result, error) {
	sendParameters := &sendParameters{timeout: c.timeout, retryParameters: c.retryParameters}
	for _, o := range opts {
		sendParameters = o(sendParameters)
	}
	result := &Result{RequestID: uuid.NewString()}
	logger := c.logger.With().
		Str("request_id", result.RequestID).
		Str("operation", spec.Name()).
		Str("method", spec.Method()).
		Str("path", spec.URLPath()).
		Logger()

	request, err := c.newRequest(spec, result.RequestID, sendParameters.timeout)
	if err != nil {
		logger.Error().Err(err).Msg("request not sent")
		return result, err
	}

	resource := getResource(spec)
	policy := resilient.CreatePolicy(sendParameters.retryParameters, isPermanent)
	start := time.Now()
	resp, attempts, err := policy.Execute(ctx, func(ctx context.Context) (*common.Response, error) {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		logger.Debug().Msg("sending attempt")
		return c.sender.Send(ctx, resource, request)
	})
	result.Elapsed = time.Since(start)
	result.Attempts = attempts

	if err != nil {
		logger.Error().Err(err).Dur("elapsed", result.Elapsed).Int("attempts", attempts).Msg("transport failure")
		c.metrics.Observe(spec.Name(), metrics.OutcomeTransportError, result.Elapsed, attempts)
		return result, err
	}

	result.StatusCode = resp.StatusCode
	result.Body = resp.Body
	result.ContentType = resp.ContentType
	result.Header = resp.Header

	if !common.IsSuccessStatus(resp.StatusCode) {
		serviceErr := classify.Classify(resp.StatusCode, resp.Body)
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", serviceErr.Message).
			Stringer("kind", serviceErr.Kind).
			Dur("elapsed", result.Elapsed).
			Int("attempts", attempts).
			Msg("service error")
		c.metrics.Observe(spec.Name(), metrics.OutcomeServiceError, result.Elapsed, attempts)
		c.metrics.ObserveServiceError(spec.Name(), serviceErr.Kind.String())
		return result, serviceErr
	}

	logger.Info().
		Int("status", resp.StatusCode).
		Dur("elapsed", result.Elapsed).
		Int("attempts", attempts).
		Msg("request completed")
	c.metrics.Observe(spec.Name(), metrics.OutcomeSuccess, result.Elapsed, attempts)
	return result, nil
}

func (c *Connection) newRequest(spec requests.Spec, requestID string, timeout time.Duration) (*common.Request, error) {
	request := &common.Request{
		Method:  spec.Method(),
		URL:     c.URL(spec),
		Header:  http.Header{},
		Timeout: timeout,
	}
	request.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		request.Header.Set("User-Agent", c.userAgent)
	}
	if spec.RequiresAuthorization() {
		if c.credentials == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, spec.Name())
		}
		request.Auth = &common.BasicAuth{Username: c.credentials.Username, Password: c.credentials.Password}
	}
	if payload, ok := spec.(requests.Payload); ok {
		request.Body = payload.Body()
		request.ContentType = payload.ContentType()
	}
	return request, nil
}

func (c *Connection) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return nil
}

func parseBaseURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) address", ErrInvalidBaseURL, baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q must not carry a query or fragment", ErrInvalidBaseURL, baseURL)
	}
	return strings.TrimRight(baseURL, "/"), nil
}
