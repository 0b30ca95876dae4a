package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/keboola/go-networking/pkg/endpoint"
)

// ErrInvalidResponse is returned if the underlying HTTP client returns neither a response nor an error.
var ErrInvalidResponse = errors.New("invalid response")

// StatusError is returned by the HTTP transport if a status check is enabled and the status is not accepted.
// See HTTP.WithStatusCheck.
type StatusError struct {
	Method     endpoint.Method
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(`request %s "%s" failed: %d %s`, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCheck returns true if the status code is accepted.
type StatusCheck func(statusCode int) bool

// SuccessStatus accepts 2xx status codes.
func SuccessStatus(statusCode int) bool {
	return statusCode > 199 && statusCode < 300
}

// NoErrorStatus accepts all status codes lower than 400.
func NoErrorStatus(statusCode int) bool {
	return statusCode < 400
}
