package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/keboola/go-networking/pkg/endpoint"
)

// EventKind is a type of the Event.
type EventKind int

const (
	// EventSent is emitted before the request is dispatched.
	EventSent EventKind = iota
	// EventReceived is emitted when the response has been successfully received.
	EventReceived
	// EventFailed is emitted when the request failed.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventSent:
		return "sent"
	case EventReceived:
		return "received"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is emitted around a dispatch of one request.
// All events of one Send call share the same ID.
type Event struct {
	Kind EventKind
	// ID is the correlation identifier of the Send call.
	ID uuid.UUID
	// Time when the event occurred.
	Time time.Time
	// Request is set for all kinds of event.
	Request *endpoint.Request
	// Response is set for EventReceived. It is a copy, modifications are not visible to the caller.
	Response *Response
	// Err is set for EventFailed.
	Err error
	// Duration since EventSent, it is set for EventReceived and EventFailed.
	Duration time.Duration
}

// Observer receives events for an external logging or telemetry.
// Observation is best-effort: it never affects the result returned to the caller, panics are recovered.
// Observe may be called concurrently for different requests.
type Observer interface {
	Observe(ctx context.Context, event Event)
}

// ObserverFunc is an adapter to use an ordinary function as an Observer.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) Observe(ctx context.Context, event Event) {
	f(ctx, event)
}

type observers []Observer

// Observers composes multiple observers to one, they are called in the order. Nil values are skipped.
func Observers(items ...Observer) Observer {
	var out observers
	for _, o := range items {
		switch v := o.(type) {
		case nil:
			continue
		case observers:
			out = append(out, v...)
		default:
			out = append(out, v)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

func (v observers) Observe(ctx context.Context, event Event) {
	for _, o := range v {
		observe(ctx, o, event)
	}
}

// observe calls the observer and recovers a panic, if any.
func observe(ctx context.Context, o Observer, event Event) {
	if o == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	o.Observe(ctx, event)
}
