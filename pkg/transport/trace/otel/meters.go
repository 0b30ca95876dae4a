package otel

import otelMetric "go.opentelemetry.io/otel/metric"

type meters struct {
	inFlight     otelMetric.Int64UpDownCounter
	duration     otelMetric.Float64Histogram
	responseSize otelMetric.Int64Histogram
}

func newMeters(meter otelMetric.Meter) *meters {
	return &meters{
		inFlight:     upDownCounter(meter, meterPrefix+"request.in_flight", "HTTP transport: in flight requests."),
		duration:     histogram(meter, meterPrefix+"request.duration", "HTTP transport: request duration, including body read.", "ms"),
		responseSize: intHistogram(meter, meterPrefix+"response.size", "HTTP transport: response body size on the wire.", "By"),
	}
}

func upDownCounter(meter otelMetric.Meter, name, desc string) otelMetric.Int64UpDownCounter {
	return mustInstrument(meter.Int64UpDownCounter(name, otelMetric.WithDescription(desc)))
}

func histogram(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Float64Histogram {
	return mustInstrument(meter.Float64Histogram(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func intHistogram(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Int64Histogram {
	return mustInstrument(meter.Int64Histogram(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
