package otel

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/transport"
)

const (
	maskedAttrValue = "****"
)

type attributes struct {
	// request attributes for span and metrics
	request []attribute.KeyValue
	// requestExtra attributes for span only
	requestExtra []attribute.KeyValue
	// response attributes for span and metrics
	response []attribute.KeyValue
	// responseExtra attributes for span only
	responseExtra []attribute.KeyValue
	// responseError attributes for metrics
	responseError []attribute.KeyValue
}

func newAttributes(cfg config, req *endpoint.Request) *attributes {
	out := &attributes{}
	reqURL := req.URL()

	// Base
	out.request = []attribute.KeyValue{
		semconv.HTTPMethodKey.String(req.Method().String()),
		semconv.NetHostName(reqURL.Hostname()),
	}
	if dotPos := strings.IndexByte(reqURL.Host, '.'); dotPos > 0 {
		// First label of the host, e.g. "api" for "api.example.com"
		out.request = append(out.request, attribute.String("http.url.host.prefix", reqURL.Host[:dotPos]))
	}

	// Extra
	out.requestExtra = []attribute.KeyValue{
		semconv.HTTPURLKey.String(redactURL(cfg, reqURL)),
		attrURLPath.String(reqURL.Path),
	}
	if req.HasBody() {
		out.requestExtra = append(out.requestExtra, attrRequestBodySize.Int(len(req.Body())))
	}
	out.requestExtra = append(out.requestExtra, headerAttrs(cfg, "http.header.", req.Header())...)

	return out
}

func (v *attributes) SetFromResponse(cfg config, res *transport.Response, err error) {
	if res != nil {
		v.response = []attribute.KeyValue{semconv.HTTPStatusCodeKey.Int(res.StatusCode)}
		v.responseExtra = append(
			[]attribute.KeyValue{attrReadBytes.Int64(res.WireBytes), attrResponseBodySize.Int(len(res.Body))},
			headerAttrs(cfg, "http.response.header.", res.Header)...,
		)
	}

	// Error
	var netErr net.Error
	errors.As(err, &netErr)
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		v.response = []attribute.KeyValue{semconv.HTTPStatusCodeKey.Int(statusErr.StatusCode)}
	}
	v.responseError = []attribute.KeyValue{
		attribute.Bool("http.response.isSuccess", isSuccess(res, err)),
		attribute.Bool("http.response.error.has", err != nil),
		attribute.Bool("http.response.error.net", netErr != nil),
		attribute.Bool("http.response.error.timeout", netErr != nil && netErr.Timeout()),
		attribute.Bool("http.response.error.cancelled", errors.Is(err, context.Canceled)),
		attribute.Bool("http.response.error.deadline_exceeded", errors.Is(err, context.DeadlineExceeded)),
	}
}

func headerAttrs(cfg config, prefix string, header http.Header) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for key, values := range header {
		key = strings.ToLower(key)
		value := strings.Join(values, ";")
		if _, found := cfg.redactedHeaders[key]; found {
			value = maskedAttrValue
		}
		attrs = append(attrs, attribute.String(prefix+key, value))
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})
	return attrs
}

func redactURL(cfg config, u *url.URL) string {
	if len(cfg.redactedQueryParams) > 0 && u.RawQuery != "" {
		query := u.Query()
		for k := range query {
			if _, found := cfg.redactedQueryParams[strings.ToLower(k)]; found {
				query.Set(k, maskedAttrValue)
			}
		}
		u.RawQuery = query.Encode()
	}
	return mustURLPathUnescape(u.String())
}

func mustURLPathUnescape(in string) string {
	out, err := url.PathUnescape(in)
	if err != nil {
		return in
	}
	return out
}

func isSuccess(res *transport.Response, err error) bool {
	if err != nil {
		return false
	}
	return res != nil && res.StatusCode < http.StatusBadRequest
}
