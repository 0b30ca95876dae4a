package trace

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keboola/go-networking/pkg/transport"
)

type zapConfig struct {
	redactedHeaders map[string]struct{}
	headers         bool
}

type ZapOption func(c *zapConfig)

// WithRedactedHeaders adds headers whose values are masked in logs.
func WithRedactedHeaders(headers ...string) ZapOption {
	return func(c *zapConfig) {
		for _, h := range headers {
			c.redactedHeaders[strings.ToLower(h)] = struct{}{}
		}
	}
}

// WithHeaders enables logging of request and response headers.
func WithHeaders() ZapOption {
	return func(c *zapConfig) {
		c.headers = true
	}
}

type zapObserver struct {
	config zapConfig
	logger *zap.Logger
}

// ZapObserver writes structured logs, sent and received events at the debug level, failed events at the warn level.
func ZapObserver(logger *zap.Logger, opts ...ZapOption) transport.Observer {
	cfg := zapConfig{redactedHeaders: defaultRedactedHeaders()}
	for _, o := range opts {
		o(&cfg)
	}
	return &zapObserver{config: cfg, logger: logger.Named("http")}
}

func (o *zapObserver) Observe(_ context.Context, event transport.Event) {
	req := event.Request
	fields := []zap.Field{
		zap.String("request.id", event.ID.String()),
		zap.String("request.method", req.Method().String()),
		zap.String("request.url", req.URL().String()),
	}
	if o.config.headers {
		fields = append(fields, zap.Strings("request.headers", headerLines(req.Header(), o.config.redactedHeaders)))
	}

	switch event.Kind {
	case transport.EventSent:
		if req.HasBody() {
			fields = append(fields, zap.Int("request.body.size", len(req.Body())))
		}
		o.log(zapcore.DebugLevel, "request sent", fields)
	case transport.EventReceived:
		res := event.Response
		fields = append(fields,
			zap.Int("response.status", res.StatusCode),
			zap.Int("response.body.size", len(res.Body)),
			zap.Int64("response.wire.size", res.WireBytes),
			zap.Duration("duration", event.Duration),
		)
		if o.config.headers {
			fields = append(fields, zap.Strings("response.headers", headerLines(res.Header, o.config.redactedHeaders)))
		}
		o.log(zapcore.DebugLevel, "response received", fields)
	case transport.EventFailed:
		fields = append(fields, zap.Duration("duration", event.Duration), zap.Error(event.Err))
		o.log(zapcore.WarnLevel, "request failed", fields)
	}
}

func (o *zapObserver) log(level zapcore.Level, msg string, fields []zap.Field) {
	if ce := o.logger.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}
