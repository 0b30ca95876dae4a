package endpoint

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodPatch   Method = http.MethodPatch
	MethodDelete  Method = http.MethodDelete
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
	MethodConnect Method = http.MethodConnect
	MethodTrace   Method = http.MethodTrace
)

// Methods returns all supported methods.
func Methods() []Method {
	return []Method{
		MethodGet,
		MethodPost,
		MethodPut,
		MethodPatch,
		MethodDelete,
		MethodHead,
		MethodOptions,
		MethodConnect,
		MethodTrace,
	}
}

func (m Method) String() string {
	return string(m)
}

// ParseMethod converts a case-insensitive method name to the Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(Methods(), m) {
		return "", fmt.Errorf(`unexpected method "%s"`, s)
	}
	return m, nil
}
