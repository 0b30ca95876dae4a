// Package provider composes the request builder, a transport and a decoder into a single typed call.
//
// A Provider holds only immutable configuration: base URL, global headers, encoder and decoder.
// All With* methods return a modified copy, so one Provider can be shared by concurrent calls without locking.
//
// Each call is a single attempt: Built -> Dispatched -> Decoded or Failed.
// The first error of any stage is returned as it is, there is no retry and no partial result.
//
// Example:
//
//	p := provider.New(transport.NewHTTP(), "https://api.example.com").WithHeader("Accept", "application/json")
//	user, err := provider.Send[User](ctx, p, endpoint.New().WithGet("/users/123"))
package provider

import (
	"context"
	"fmt"
	"maps"

	"github.com/keboola/go-networking/pkg/codec"
	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/transport"
)

// Sender sends the endpoint and decodes the response body into the out pointer.
// Provider is the default implementation.
type Sender interface {
	SendInto(ctx context.Context, e endpoint.Endpoint, out any) error
}

// NoResult can be used as the result type, if the response body is not important.
// The body is not decoded at all.
type NoResult struct{}

// Provider sends endpoints to a single API, see the package documentation.
type Provider struct {
	transport transport.Transport
	baseURL   string
	headers   map[string]string
	encoder   codec.Encoder
	decoder   codec.Decoder
}

// New creates a Provider with the JSON encoder and decoder.
func New(t transport.Transport, baseURL string) Provider {
	if t == nil {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	json := codec.NewJSON()
	return Provider{
		transport: t,
		baseURL:   baseURL,
		headers:   make(map[string]string),
		encoder:   json,
		decoder:   json,
	}
}

func (p Provider) BaseURL() string {
	return p.baseURL
}

// Headers returns a copy of global headers.
func (p Provider) Headers() map[string]string {
	return maps.Clone(p.headers)
}

// WithBaseURL returns a clone of the Provider with a new base URL.
// The URL is validated lazily, when a request is built.
func (p Provider) WithBaseURL(baseURL string) Provider {
	p.baseURL = baseURL
	return p
}

// WithHeader returns a clone of the Provider with a global header set.
func (p Provider) WithHeader(key, value string) Provider {
	p.headers = maps.Clone(p.headers)
	if p.headers == nil {
		p.headers = make(map[string]string)
	}
	p.headers[key] = value
	return p
}

// WithHeaders returns a clone of the Provider with global headers replaced.
func (p Provider) WithHeaders(headers map[string]string) Provider {
	p.headers = maps.Clone(headers)
	return p
}

// WithTransport returns a clone of the Provider with a new transport.
func (p Provider) WithTransport(t transport.Transport) Provider {
	if t == nil {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	p.transport = t
	return p
}

// WithEncoder returns a clone of the Provider with a new encoder of request bodies.
func (p Provider) WithEncoder(encoder codec.Encoder) Provider {
	if encoder == nil {
		panic(fmt.Errorf("encoder cannot be nil"))
	}
	p.encoder = encoder
	return p
}

// WithDecoder returns a clone of the Provider with a new decoder of response bodies.
func (p Provider) WithDecoder(decoder codec.Decoder) Provider {
	if decoder == nil {
		panic(fmt.Errorf("decoder cannot be nil"))
	}
	p.decoder = decoder
	return p
}

// WithCodec sets both encoder and decoder.
func (p Provider) WithCodec(c codec.Codec) Provider {
	return p.WithEncoder(c).WithDecoder(c)
}

// Build resolves the endpoint against the provider configuration, no I/O is performed.
func (p Provider) Build(e endpoint.Endpoint) (*endpoint.Request, error) {
	return endpoint.Build(e, p.baseURL, p.headers, p.encoder)
}

// Fetch builds and sends the endpoint and returns the raw response.
func (p Provider) Fetch(ctx context.Context, e endpoint.Endpoint) (*transport.Response, error) {
	// Method cannot be called on an empty value
	if p.transport == nil {
		panic(fmt.Errorf("provider value is not initialized"))
	}

	req, err := p.Build(e)
	if err != nil {
		return nil, err
	}

	res, err := p.transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, transport.ErrInvalidResponse
	}
	return res, nil
}

// SendInto builds and sends the endpoint and decodes the response body into the out pointer.
// Decoding is skipped if out is *NoResult.
func (p Provider) SendInto(ctx context.Context, e endpoint.Endpoint, out any) error {
	res, err := p.Fetch(ctx, e)
	if err != nil {
		return err
	}

	if _, ok := out.(*NoResult); ok {
		return nil
	}

	return p.decoder.Decode(res.Body, out)
}

// Send builds and sends the endpoint by the sender and returns the decoded result.
func Send[T any](ctx context.Context, sender Sender, e endpoint.Endpoint) (T, error) {
	var result T
	if err := sender.SendInto(ctx, e, &result); err != nil {
		var empty T
		return empty, err
	}
	return result, nil
}
