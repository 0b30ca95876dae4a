package provider_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustReadAll(t *testing.T, req *http.Request) []byte {
	t.Helper()
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	return data
}
