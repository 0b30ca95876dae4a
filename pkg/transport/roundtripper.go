package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

const (
	// DialTimeout is the maximum connection initialization time.
	DialTimeout = 3 * time.Second
	// KeepAlive is the interval between keep-alive probes.
	KeepAlive = 10 * time.Second
	// TLSHandshakeTimeout is the timeout of the TLS handshake.
	TLSHandshakeTimeout = 5 * time.Second
	// ResponseHeaderTimeout is the time to wait for response headers, the body read is not limited.
	ResponseHeaderTimeout = 20 * time.Second
	// MaxConnectionsPerHost limits open connections to a host.
	MaxConnectionsPerHost = 32
	// HTTP2HealthCheckTimeout is used for ping frames of the HTTP2Transport.
	HTTP2HealthCheckTimeout = 3 * time.Second
)

// DefaultTransport is used by NewHTTP, HTTP/2 is preferred if the server supports it.
// Request timeouts are not set here, use the context deadline.
func DefaultTransport() http.RoundTripper {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           Dialer().DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		MaxConnsPerHost:       MaxConnectionsPerHost,
		MaxIdleConnsPerHost:   MaxConnectionsPerHost,
	}
}

// HTTP2Transport speaks only HTTP/2 over TLS, there is no fallback to HTTP/1.1.
func HTTP2Transport() http.RoundTripper {
	return &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, cfg *tls.Config) (net.Conn, error) {
			dialer := &tls.Dialer{NetDialer: Dialer(), Config: cfg}
			return dialer.DialContext(ctx, network, addr)
		},
		ReadIdleTimeout:  HTTP2HealthCheckTimeout,
		PingTimeout:      HTTP2HealthCheckTimeout,
		WriteByteTimeout: HTTP2HealthCheckTimeout,
	}
}

func Dialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   DialTimeout,
		KeepAlive: KeepAlive,
	}
}
