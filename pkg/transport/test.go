package transport

import (
	"github.com/jarcoal/httpmock"
)

// NewMockedHTTP creates the HTTP transport with a mocked round tripper.
func NewMockedHTTP() (HTTP, *httpmock.MockTransport) {
	mockTransport := httpmock.NewMockTransport()
	return NewHTTP().WithRoundTripper(mockTransport), mockTransport
}
