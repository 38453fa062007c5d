package common

import (
	"net/http"
	"time"
)

// Request is one fully resolved call against the service.
type Request struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
	Auth        *BasicAuth
	Header      http.Header
	// Timeout bounds a single attempt; zero means no per-attempt deadline.
	Timeout time.Duration
}

type BasicAuth struct {
	Username string
	Password string
}

// Response is immutable once received.
type Response struct {
	StatusCode  int
	Body        string
	ContentType string
	Header      http.Header
}

func IsSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
