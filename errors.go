package rwsclient

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/RassulYunussov/rwsclient/internal/cb"
	"github.com/RassulYunussov/rwsclient/internal/classify"
)

// ServiceError is a non-2xx response normalised by the error classifier.
type ServiceError = classify.Error

// ErrorKind names the response body shape a ServiceError was read from.
type ErrorKind = classify.Kind

const (
	KindUnrecognized     = classify.KindUnrecognized
	KindResponseDocument = classify.KindResponseDocument
	KindODMDocument      = classify.KindODMDocument
	KindIISPage          = classify.KindIISPage
)

var (
	ErrMissingCredentials = errors.New("request requires authorization but the connection has no credentials")
	ErrRateLimited        = errors.New("rate limiter refused the request")
	ErrInvalidBaseURL     = errors.New("invalid base URL")
)

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

func IsServiceError(err error) bool {
	_, ok := AsServiceError(err)
	return ok
}

// IsUnauthorized reports a 401 response, typically bad credentials.
func IsUnauthorized(err error) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.StatusCode == http.StatusUnauthorized
}

// IsTransportError reports a failure to obtain any HTTP response.
func IsTransportError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) || cb.IsRejected(err) || errors.Is(err, ErrRateLimited)
}
