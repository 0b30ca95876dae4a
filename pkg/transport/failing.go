package transport

import (
	"context"
	"fmt"

	"github.com/keboola/go-networking/pkg/endpoint"
)

// Failing transport always returns the configured error, regardless of the request.
type Failing struct {
	err error
}

func NewFailing(err error) Failing {
	if err == nil {
		panic(fmt.Errorf("error cannot be nil"))
	}
	return Failing{err: err}
}

func (t Failing) Send(_ context.Context, _ *endpoint.Request) (*Response, error) {
	if t.err == nil {
		panic(fmt.Errorf("transport value is not initialized"))
	}
	return nil, t.err
}
