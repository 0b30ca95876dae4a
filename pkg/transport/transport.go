// Package transport is the only I/O seam of the networking layer.
//
// A Transport sends a concrete endpoint.Request and returns the raw response body with metadata.
// HTTP is the live implementation based on the standard net/http package.
// Failing always returns a pre-configured error, it is handy for testing failure paths.
// Any function with the Send signature can be used as a Transport, see Func.
//
// The HTTP transport optionally notifies an Observer around each dispatch,
// see the trace and trace/otel packages for logging and telemetry observers.
package transport

import (
	"context"
	"net/http"
	"slices"

	"github.com/keboola/go-networking/pkg/endpoint"
)

// Transport sends a request and returns the response body and metadata.
// The set of returned errors is defined by the implementation.
type Transport interface {
	Send(ctx context.Context, req *endpoint.Request) (*Response, error)
}

// Func is an adapter to use an ordinary function as a Transport.
type Func func(ctx context.Context, req *endpoint.Request) (*Response, error)

func (f Func) Send(ctx context.Context, req *endpoint.Request) (*Response, error) {
	return f(ctx, req)
}

// Response is a fully read response.
type Response struct {
	// Body is the response body, content encoding (gzip, br) is already decoded.
	Body []byte
	// StatusCode is the HTTP status code, e.g. 200.
	StatusCode int
	// Status is the HTTP status line, e.g. "200 OK".
	Status string
	// Header contains response headers.
	Header http.Header
	// Proto is the protocol version, e.g. "HTTP/1.1".
	Proto string
	// WireBytes is number of body bytes read from the network, before content decoding.
	WireBytes int64
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := *r
	out.Body = slices.Clone(r.Body)
	out.Header = r.Header.Clone()
	return &out
}

// ContentType returns the Content-Type response header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}
