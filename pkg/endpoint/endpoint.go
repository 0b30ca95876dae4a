// Package endpoint provides a declarative description of a single HTTP call
// and its translation to a concrete, immutable Request.
//
// Implement the Endpoint interface by embedding the Base struct and overriding only what differs:
//
//	type LaunchesEndpoint struct{ endpoint.Base }
//
//	func (LaunchesEndpoint) Path() string { return "/launches" }
//
// Or compose an immutable Definition, see the New function.
//
// The Build function resolves an Endpoint against a base URL and global headers.
package endpoint

import (
	"maps"
)

// Endpoint describes the shape of one HTTP call, independent of the transport.
type Endpoint interface {
	// Path is appended to the path of the base URL.
	Path() string
	// Method returns the HTTP method.
	Method() Method
	// Queries returns query parameters.
	Queries() map[string]string
	// Headers returns endpoint specific headers, they take precedence over global headers.
	Headers() map[string]string
	// Body returns a value serialized by the encoder, or nil if there is no body.
	Body() any
}

// Base provides default values of all Endpoint methods: an empty path, the GET method,
// no query parameters, no headers and no body.
type Base struct{}

func (Base) Path() string {
	return ""
}

func (Base) Method() Method {
	return MethodGet
}

func (Base) Queries() map[string]string {
	return nil
}

func (Base) Headers() map[string]string {
	return nil
}

func (Base) Body() any {
	return nil
}

// Definition is an immutable Endpoint. Each modifying method returns a modified clone.
type Definition struct {
	path    string
	method  Method
	queries map[string]string
	headers map[string]string
	body    any
}

// New creates an empty GET Definition.
func New() Definition {
	return Definition{method: MethodGet}
}

func (d Definition) Path() string {
	return d.path
}

func (d Definition) Method() Method {
	if d.method == "" {
		return MethodGet
	}
	return d.method
}

func (d Definition) Queries() map[string]string {
	return maps.Clone(d.queries)
}

func (d Definition) Headers() map[string]string {
	return maps.Clone(d.headers)
}

func (d Definition) Body() any {
	return d.body
}

// WithGet is shortcut for WithMethod(MethodGet).WithPath(path).
func (d Definition) WithGet(path string) Definition {
	return d.WithMethod(MethodGet).WithPath(path)
}

// WithPost is shortcut for WithMethod(MethodPost).WithPath(path).
func (d Definition) WithPost(path string) Definition {
	return d.WithMethod(MethodPost).WithPath(path)
}

// WithPut is shortcut for WithMethod(MethodPut).WithPath(path).
func (d Definition) WithPut(path string) Definition {
	return d.WithMethod(MethodPut).WithPath(path)
}

// WithPatch is shortcut for WithMethod(MethodPatch).WithPath(path).
func (d Definition) WithPatch(path string) Definition {
	return d.WithMethod(MethodPatch).WithPath(path)
}

// WithDelete is shortcut for WithMethod(MethodDelete).WithPath(path).
func (d Definition) WithDelete(path string) Definition {
	return d.WithMethod(MethodDelete).WithPath(path)
}

func (d Definition) WithPath(path string) Definition {
	d.path = path
	return d
}

func (d Definition) WithMethod(method Method) Definition {
	d.method = method
	return d
}

// AndQuery sets a single query parameter.
func (d Definition) AndQuery(key, value string) Definition {
	d.queries = cloneMap(d.queries)
	d.queries[key] = value
	return d
}

// WithQueries replaces all query parameters.
func (d Definition) WithQueries(queries map[string]string) Definition {
	d.queries = cloneMap(queries)
	return d
}

// AndHeader sets a single header.
func (d Definition) AndHeader(key, value string) Definition {
	d.headers = cloneMap(d.headers)
	d.headers[key] = value
	return d
}

// WithHeaders replaces all headers.
func (d Definition) WithHeaders(headers map[string]string) Definition {
	d.headers = cloneMap(headers)
	return d
}

// WithBody sets the body, nil removes it.
func (d Definition) WithBody(body any) Definition {
	d.body = body
	return d
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	maps.Copy(out, in)
	return out
}
