package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/keboola/go-networking/pkg/codec"
	"github.com/keboola/go-networking/pkg/transport"
)

const dumpMaxLength = 2000

type dumpObserver struct {
	lock   sync.Mutex
	wr     io.Writer
	pretty codec.JSON
}

// DumpObserver dumps the request and the response to the writer, when the request is done.
// JSON bodies are indented. Bodies longer than 2000 bytes are truncated, unless HTTP_DUMP_TRACE_FULL=true.
// Output may contain unmasked tokens, do not use it in production!
func DumpObserver(wr io.Writer) transport.Observer {
	return &dumpObserver{
		wr:     wr,
		pretty: codec.NewJSONWithConfig(codec.JSONConfig{SortMapKeys: true, UseNumber: true, Indent: "  "}),
	}
}

func (o *dumpObserver) Observe(_ context.Context, event transport.Event) {
	if event.Kind == transport.EventSent {
		return
	}

	var out strings.Builder
	log := func(a ...any) {
		_, _ = fmt.Fprintln(&out, a...)
	}

	// Request
	req := event.Request
	log()
	log(">>>>>> HTTP DUMP")
	log(fmt.Sprintf(`%s "%s"`, req.Method(), req.URL().String()))
	for _, line := range headerLines(req.Header(), nil) {
		log(line)
	}
	if req.HasBody() {
		log("------")
		log(o.body(req.Body(), req.ContentType()))
	}

	// Response
	log("------")
	if event.Kind == transport.EventFailed {
		log("ERROR:", event.Err)
	} else {
		res := event.Response
		log(strings.TrimSpace(res.Proto + " " + res.Status))
		for _, line := range headerLines(res.Header, nil) {
			log(line)
		}
		if len(res.Body) > 0 {
			log("------")
			log(o.body(res.Body, res.ContentType()))
		}
	}
	log("<<<<<< HTTP DUMP END | DURATION:", event.Duration)

	o.lock.Lock()
	defer o.lock.Unlock()
	_, _ = io.WriteString(o.wr, out.String())
}

func (o *dumpObserver) body(data []byte, contentType string) string {
	body := string(data)
	if codec.IsJSONContentType(contentType) {
		var value any
		if err := o.pretty.Decode(data, &value); err == nil {
			if indented, err := o.pretty.Encode(value); err == nil {
				body = string(indented)
			}
		}
	}

	body = strings.TrimSpace(body)
	if len(body) > dumpMaxLength && os.Getenv("HTTP_DUMP_TRACE_FULL") != "true" { //nolint:forbidigo
		return body[:dumpMaxLength] + "\n... (set env HTTP_DUMP_TRACE_FULL=true to see full output)"
	}
	return body
}
