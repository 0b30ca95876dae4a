package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/transport/counter"
	"github.com/keboola/go-networking/pkg/transport/decode"
)

// Doer sends a standard HTTP request, *http.Client is the default implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTP is the live Transport based on the standard net/http package.
//
// Each Send call gets a new correlation ID, which is part of all Observer events of the call.
// The response body is fully read and decoded according to the Content-Encoding header.
// Network errors are returned as they are, deadline and cancellation are controlled by the context.
type HTTP struct {
	doer        Doer
	observer    Observer
	statusCheck StatusCheck
}

// NewHTTP creates the HTTP transport with the DefaultTransport.
func NewHTTP() HTTP {
	return HTTP{doer: &http.Client{Transport: DefaultTransport()}}
}

// WithDoer returns a clone of the HTTP transport with a custom HTTP client set.
func (t HTTP) WithDoer(doer Doer) HTTP {
	if doer == nil {
		panic(fmt.Errorf("doer cannot be nil"))
	}
	t.doer = doer
	return t
}

// WithRoundTripper returns a clone of the HTTP transport with a new http.Client using the round tripper.
func (t HTTP) WithRoundTripper(rt http.RoundTripper) HTTP {
	if rt == nil {
		panic(fmt.Errorf("round tripper cannot be nil"))
	}
	t.doer = &http.Client{Transport: rt}
	return t
}

// WithObserver returns a clone of the HTTP transport with the observer set, nil removes the observer.
func (t HTTP) WithObserver(o Observer) HTTP {
	t.observer = o
	return t
}

// AndObserver returns a clone of the HTTP transport with the observer added to already registered observers.
func (t HTTP) AndObserver(o Observer) HTTP {
	t.observer = Observers(t.observer, o)
	return t
}

// WithStatusCheck returns a clone of the HTTP transport, which returns *StatusError
// if the response status code is not accepted by the check. Nil disables the check.
func (t HTTP) WithStatusCheck(check StatusCheck) HTTP {
	t.statusCheck = check
	return t
}

// Send sends the request, it implements the Transport interface.
func (t HTTP) Send(ctx context.Context, req *endpoint.Request) (res *Response, err error) {
	// Method cannot be called on an empty value
	if t.doer == nil {
		panic(fmt.Errorf("transport value is not initialized"))
	}

	// Notify observer
	id := uuid.New()
	startedAt := time.Now()
	if t.observer != nil {
		observe(ctx, t.observer, Event{Kind: EventSent, ID: id, Time: startedAt, Request: req})
		defer func() {
			event := Event{ID: id, Time: time.Now(), Request: req, Duration: time.Since(startedAt)}
			if err == nil {
				event.Kind = EventReceived
				event.Response = res.Clone()
			} else {
				event.Kind = EventFailed
				event.Err = err
			}
			observe(ctx, t.observer, event)
		}()
	}

	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	if httpReq.Header.Get("Accept-Encoding") == "" {
		httpReq.Header.Set("Accept-Encoding", decode.AcceptEncoding)
	}

	httpRes, err := t.doer.Do(httpReq)
	if err != nil {
		return nil, err
	}
	if httpRes == nil || httpRes.Body == nil {
		return nil, ErrInvalidResponse
	}

	res, err = readResponse(req.Method(), httpRes)
	if err != nil {
		return nil, fmt.Errorf(`cannot process request %s: %w`, req, err)
	}

	if t.statusCheck != nil && !t.statusCheck(res.StatusCode) {
		return nil, &StatusError{
			Method:     req.Method(),
			URL:        req.URL().String(),
			StatusCode: res.StatusCode,
			Header:     res.Header,
			Body:       res.Body,
		}
	}

	return res, nil
}

func readResponse(method endpoint.Method, r *http.Response) (*Response, error) {
	defer r.Body.Close()

	wire := counter.NewReader(r.Body)
	var body io.Reader = wire
	decoded := false
	if hasBody(method, r.StatusCode) {
		var err error
		body, decoded, err = decode.Reader(wire, r.Header.Get("Content-Encoding"))
		if err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response body: %w", err)
	}

	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if decoded {
		// Body is already decoded
		header.Del("Content-Encoding")
		header.Del("Content-Length")
	}

	return &Response{
		Body:       data,
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Header:     header,
		Proto:      r.Proto,
		WireBytes:  wire.Bytes(),
	}, nil
}

// hasBody reports whether the response can carry a content, see RFC 9110, section 6.4.1.
func hasBody(method endpoint.Method, status int) bool {
	switch {
	case method == endpoint.MethodHead:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	default:
		return true
	}
}
