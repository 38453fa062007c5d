// Package requests describes operations against Rave Web Services.
//
// Every descriptor is an immutable *Request produced by a validating constructor:
// invalid input fails at construction, never at send time, and no network call is made.
// URL paths are relative to the service root and deterministic: query parameters are drawn
// from a fixed per-descriptor whitelist, emitted in the whitelist's order, and omitted when unset.
package requests

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Spec is what a connection needs to dispatch one operation.
type Spec interface {
	// stable operation name, used for logs, metrics and circuit breaker resources
	Name() string
	Method() string
	RequiresAuthorization() bool
	// path relative to the service root, with query string if any
	URLPath() string
}

// Payload is implemented by specs that carry a request body.
type Payload interface {
	Body() []byte
	ContentType() string
}

type queryParam struct {
	key   string
	value string
}

// Request is the single concrete Spec; only constructors in this package build one.
type Request struct {
	name        string
	method      string
	auth        bool
	segments    []string
	action      string // bare query word of webservice.aspx endpoints, e.g. PostODMClinicalData
	query       []queryParam
	body        []byte
	contentType string
}

var (
	_ Spec    = (*Request)(nil)
	_ Payload = (*Request)(nil)
)

func (r *Request) Name() string {
	return r.name
}

func (r *Request) Method() string {
	return r.method
}

func (r *Request) RequiresAuthorization() bool {
	return r.auth
}

func (r *Request) URLPath() string {
	var b strings.Builder
	for i, segment := range r.segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(escapeSegment(segment))
	}
	if r.action != "" {
		b.WriteByte('?')
		b.WriteString(r.action)
		return b.String()
	}
	for i, p := range r.query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Body returns a copy of the request body; nil for GET descriptors.
func (r *Request) Body() []byte {
	return bytes.Clone(r.body)
}

func (r *Request) ContentType() string {
	return r.contentType
}

func (r *Request) String() string {
	return r.method + " " + r.URLPath()
}

// parentheses are legal in a path segment and name study environments
var segmentUnescaper = strings.NewReplacer("%28", "(", "%29", ")")

func escapeSegment(segment string) string {
	return segmentUnescaper.Replace(url.PathEscape(segment))
}

func get(name string, auth bool, segments ...string) *Request {
	return &Request{name: name, method: http.MethodGet, auth: auth, segments: segments}
}

// whitelist is the ordered set of optional query keys one descriptor accepts.
type whitelist []string

// pick keeps set values only, in whitelist order; keys outside the whitelist are rejected.
func (w whitelist) pick(values map[string]string) ([]queryParam, error) {
	for key := range values {
		if !slices.Contains(w, key) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQueryKey, key)
		}
	}
	params := make([]queryParam, 0, len(w))
	for _, key := range w {
		if value := values[key]; value != "" {
			params = append(params, queryParam{key: key, value: value})
		}
	}
	return params, nil
}

// studyEnvironment is the service's name for one environment of a project, e.g. Mediflex(Prod).
func studyEnvironment(projectName, environmentName string) string {
	return projectName + "(" + environmentName + ")"
}
