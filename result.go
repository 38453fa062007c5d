package rwsclient

import (
	"net/http"
	"time"
)

type Credentials struct {
	Username string
	Password string
}

// Result describes one Send call.
// Response fields are zero when no HTTP response was received.
type Result struct {
	// raw body, unparsed
	Body        string
	StatusCode  int
	ContentType string
	Header      http.Header
	// wall clock time across all attempts, backoff included
	Elapsed   time.Duration
	Attempts  int
	RequestID string
}
