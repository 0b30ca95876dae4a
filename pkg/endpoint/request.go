package endpoint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
)

// Request is a concrete request resolved from an Endpoint by the Build function.
// The value is immutable, all getters return copies.
type Request struct {
	method      Method
	url         *url.URL
	header      http.Header
	body        []byte
	contentType string
}

func (r *Request) Method() Method {
	return r.method
}

// URL returns the resolved absolute URL.
func (r *Request) URL() *url.URL {
	out := *r.url
	return &out
}

// Header returns merged endpoint and global headers.
func (r *Request) Header() http.Header {
	return r.header.Clone()
}

// Body returns the serialized body, or nil if the endpoint has no body.
func (r *Request) Body() []byte {
	return slices.Clone(r.body)
}

func (r *Request) HasBody() bool {
	return r.body != nil
}

// ContentType returns media type of the encoder used for the body, if any.
func (r *Request) ContentType() string {
	return r.contentType
}

func (r *Request) String() string {
	return fmt.Sprintf(`%s "%s"`, r.method, r.url.String())
}

// HTTPRequest converts the request to the standard *http.Request bound to the ctx.
// The Content-Type header is set from the encoder, if the request has a body and the header is not set explicitly.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.method), r.url.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header = r.Header()
	if r.body != nil && r.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	return req, nil
}
