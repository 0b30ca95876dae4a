package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/keboola/go-networking/pkg/codec"
)

// Build resolves the endpoint against the base URL and global headers.
//
// The endpoint path is appended to the base URL path as it is, slashes are not normalized.
// Query parameters are added only if there are some.
// Endpoint headers take precedence over global headers with the same canonical key.
// The body, if any, is serialized by the encoder and the encoder error is returned as it is.
//
// No network I/O is performed.
func Build(e Endpoint, baseURL string, globalHeaders map[string]string, encoder codec.Encoder) (*Request, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: endpoint is not set", ErrInvalidEndpoint)
	}

	// Parse base url
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf(`%w "%s": %w`, ErrInvalidBaseURL, baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf(`%w "%s": url must be absolute`, ErrInvalidBaseURL, baseURL)
	}

	// Compose url
	reqURL, err := composeURL(base, e.Path(), e.Queries())
	if err != nil {
		return nil, fmt.Errorf(`%w %s "%s": %w`, ErrInvalidEndpoint, e.Method(), e.Path(), err)
	}

	// Method
	method := e.Method()
	if method == "" {
		method = MethodGet
	}

	// Endpoint headers win over global headers
	header := make(http.Header)
	for k, v := range e.Headers() {
		header.Set(k, v)
	}
	for k, v := range globalHeaders {
		if _, found := header[http.CanonicalHeaderKey(k)]; !found {
			header.Set(k, v)
		}
	}

	req := &Request{method: method, url: reqURL, header: header}

	// Body
	if body := e.Body(); body != nil {
		if encoder == nil {
			return nil, errors.New("cannot encode request body: encoder is not set")
		}
		encoded, err := encoder.Encode(body)
		if err != nil {
			return nil, err
		}
		if encoded == nil {
			encoded = []byte{}
		}
		req.body = encoded
		req.contentType = encoder.ContentType()
	}

	return req, nil
}

func composeURL(base *url.URL, path string, queries map[string]string) (*url.URL, error) {
	out := *base

	// Append path, the escaped form of the base path is kept
	if path != "" {
		rawPath := base.EscapedPath() + path
		unescaped, err := url.PathUnescape(rawPath)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(unescaped, "/") {
			return nil, fmt.Errorf(`path "%s" must start with "/" if the url has a host`, unescaped)
		}
		out.Path = unescaped
		out.RawPath = rawPath
	}

	// Add query parameters, if any
	if len(queries) > 0 {
		values, err := url.ParseQuery(out.RawQuery)
		if err != nil {
			return nil, err
		}
		for k, v := range queries {
			values.Set(k, v)
		}
		out.RawQuery = values.Encode()
	}

	// The composed url must be parseable again
	resolved, err := url.Parse(out.String())
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
