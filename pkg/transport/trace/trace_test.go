package trace_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/keboola/go-networking/pkg/codec"
	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/transport"
)

func testRequest(t *testing.T, e endpoint.Endpoint) *endpoint.Request {
	t.Helper()
	req, err := endpoint.Build(e, "https://example.com", map[string]string{"Authorization": "Bearer secret"}, codec.NewJSON())
	require.NoError(t, err)
	return req
}

func testResponse(body string) *transport.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Set-Cookie", "session=secret")
	return &transport.Response{
		Body:       []byte(body),
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     header,
		Proto:      "HTTP/1.1",
		WireBytes:  int64(len(body)),
	}
}

// observeAll simulates two requests, the first succeeds, the second fails.
func observeAll(t *testing.T, o transport.Observer) {
	t.Helper()
	ctx := context.Background()

	req1 := testRequest(t, endpoint.New().WithPost("/users").WithBody(map[string]string{"name": "John"}))
	id1 := uuid.New()
	o.Observe(ctx, transport.Event{Kind: transport.EventSent, ID: id1, Time: time.Now(), Request: req1})
	o.Observe(ctx, transport.Event{Kind: transport.EventReceived, ID: id1, Time: time.Now(), Request: req1, Response: testResponse(`{"id":1,"name":"John"}`), Duration: time.Millisecond})

	req2 := testRequest(t, endpoint.New().WithGet("/users").AndQuery("page", "2"))
	id2 := uuid.New()
	o.Observe(ctx, transport.Event{Kind: transport.EventSent, ID: id2, Time: time.Now(), Request: req2})
	o.Observe(ctx, transport.Event{Kind: transport.EventFailed, ID: id2, Time: time.Now(), Request: req2, Err: errors.New("connection refused"), Duration: 2 * time.Millisecond})
}

func trimExpected(s string) string {
	return strings.TrimLeft(s, "\n")
}
