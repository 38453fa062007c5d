package common

import "context"

// Common interface for all sender decorators
type Sender interface {
	// resource is a semantic name used to separate circuit breakers (method + operation)
	// returns an error only when no HTTP response was received
	Send(ctx context.Context, resource string, r *Request) (*Response, error)
}
