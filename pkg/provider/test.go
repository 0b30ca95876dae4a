package provider

import (
	"github.com/jarcoal/httpmock"

	"github.com/keboola/go-networking/pkg/transport"
)

// NewMockedProvider creates the Provider with the HTTP transport and a mocked round tripper.
func NewMockedProvider(baseURL string) (Provider, *httpmock.MockTransport) {
	t, mock := transport.NewMockedHTTP()
	return New(t, baseURL), mock
}
