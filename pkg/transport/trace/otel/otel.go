// Package otel provides OpenTelemetry tracing and metrics for the transport.HTTP.
//
// The Observer creates one span per Send call, the correlation ID of the call is a span attribute.
//   - Span name is "keboola.go.networking.request".
//   - The span starts at the "sent" event and ends at the "received" or "failed" event.
//   - Metrics names start with "keboola.go.networking." (meterPrefix const), see the meters struct.
//
// Request headers are fixed when the request is built,
// so the trace context is not propagated to the server.
package otel

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelMetric "go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/keboola/go-networking/pkg/transport"
)

const (
	traceAppName         = "github.com/keboola/go-networking"
	meterPrefix          = "keboola.go.networking."
	requestSpanName      = "keboola.go.networking.request"
	attrResourceName     = attribute.Key("resource.name")
	attrRequestID        = attribute.Key("http.request.id")
	attrURLPath          = attribute.Key("http.url.path")
	attrRequestBodySize  = attribute.Key("http.request.body.size")
	attrResponseBodySize = attribute.Key("http.response.body.size")
	attrReadBytes        = attribute.Key("http.read_bytes")
	// Extra attributes for DataDog.
	attrSpanKind            = attribute.Key("span.kind")
	attrSpanKindValueClient = "client"
	attrSpanType            = attribute.Key("span.type")
	attrSpanTypeValueHTTP   = "http"
)

type observer struct {
	config config
	tracer otelTrace.Tracer
	meters *meters
	active sync.Map // correlation ID -> *request
}

type request struct {
	ctx   context.Context
	span  otelTrace.Span
	attrs *attributes
}

// NewObserver creates the telemetry observer. Nil providers are replaced by no-op implementations.
func NewObserver(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...Option) transport.Observer {
	if tracerProvider == nil {
		tracerProvider = noop.NewTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = metricNoop.NewMeterProvider()
	}
	return &observer{
		config: newConfig(opts),
		tracer: tracerProvider.Tracer(traceAppName),
		meters: newMeters(meterProvider.Meter(traceAppName)),
	}
}

func (o *observer) Observe(ctx context.Context, event transport.Event) {
	switch event.Kind {
	case transport.EventSent:
		o.started(ctx, event)
	case transport.EventReceived, transport.EventFailed:
		o.done(event)
	}
}

func (o *observer) started(ctx context.Context, event transport.Event) {
	attrs := newAttributes(o.config, event.Request)

	// Metrics
	o.meters.inFlight.Add(ctx, 1, otelMetric.WithAttributes(attrs.request...))

	// Tracing
	ctx, span := o.tracer.Start(
		ctx,
		requestSpanName,
		otelTrace.WithTimestamp(eventTime(event)),
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
		otelTrace.WithAttributes(
			attrResourceName.String(event.Request.URL().Path),
			attrSpanKind.String(attrSpanKindValueClient),
			attrSpanType.String(attrSpanTypeValueHTTP),
			attrRequestID.String(event.ID.String()),
		),
		otelTrace.WithAttributes(attrs.request...),
		otelTrace.WithAttributes(attrs.requestExtra...),
	)

	o.active.Store(event.ID, &request{ctx: ctx, span: span, attrs: attrs})
}

func (o *observer) done(event transport.Event) {
	v, found := o.active.LoadAndDelete(event.ID)
	if !found {
		return
	}
	req := v.(*request)
	attrs := req.attrs
	attrs.SetFromResponse(o.config, event.Response, event.Err)

	// Metrics
	elapsedTime := float64(event.Duration) / float64(time.Millisecond)
	meterAttrs := append(append(append([]attribute.KeyValue{}, attrs.request...), attrs.response...), attrs.responseError...)
	o.meters.inFlight.Add(req.ctx, -1, otelMetric.WithAttributes(attrs.request...)) // same attributes/dimensions as above (+1)!
	o.meters.duration.Record(req.ctx, elapsedTime, otelMetric.WithAttributes(meterAttrs...))
	if event.Response != nil {
		o.meters.responseSize.Record(req.ctx, event.Response.WireBytes, otelMetric.WithAttributes(meterAttrs...))
	}

	// Tracing
	span := req.span
	span.SetAttributes(attrs.response...)
	span.SetAttributes(attrs.responseExtra...)
	switch {
	case event.Err != nil:
		span.RecordError(event.Err)
		span.SetStatus(codes.Error, event.Err.Error())
	case event.Response != nil && event.Response.StatusCode >= http.StatusBadRequest:
		httpErr := fmt.Errorf(`HTTP status code: %d %s`, event.Response.StatusCode, http.StatusText(event.Response.StatusCode))
		span.RecordError(httpErr)
		span.SetStatus(codes.Error, httpErr.Error())
	}
	span.End(otelTrace.WithTimestamp(eventTime(event)))
}

func eventTime(event transport.Event) time.Time {
	if event.Time.IsZero() {
		return time.Now()
	}
	return event.Time
}
