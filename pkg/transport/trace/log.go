package trace

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/keboola/go-networking/pkg/transport"
)

type logObserver struct {
	lock sync.Mutex
	wr   io.Writer
	seq  *sequence
}

// LogObserver writes one line per event to the writer, for example:
//
//	HTTP_REQUEST[0001] SENT     GET "https://example.com/users"
//	HTTP_REQUEST[0001] RECEIVED GET "https://example.com/users" | 200 | 12.3ms | 1024B
func LogObserver(wr io.Writer) transport.Observer {
	return &logObserver{wr: wr, seq: newSequence()}
}

func (o *logObserver) Observe(_ context.Context, event transport.Event) {
	req := event.Request
	switch event.Kind {
	case transport.EventSent:
		o.log(o.seq.get(event.ID), fmt.Sprintf(`SENT     %s "%s"`, req.Method(), req.URL().String()))
	case transport.EventReceived:
		res := event.Response
		o.log(o.seq.release(event.ID), fmt.Sprintf(`RECEIVED %s "%s" | %d | %s | %dB`, req.Method(), req.URL().String(), res.StatusCode, event.Duration, len(res.Body)))
	case transport.EventFailed:
		o.log(o.seq.release(event.ID), fmt.Sprintf(`FAILED   %s "%s" | %s | error=%s`, req.Method(), req.URL().String(), event.Duration, event.Err))
	}
}

func (o *logObserver) log(requestID uint64, msg string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	_, _ = fmt.Fprintln(o.wr, fmt.Sprintf("HTTP_REQUEST[%04d]", requestID), msg)
}
