package endpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/keboola/go-networking/pkg/endpoint"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	for _, m := range Methods() {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	parsed, err := ParseMethod(" patch ")
	require.NoError(t, err)
	assert.Equal(t, MethodPatch, parsed)

	_, err = ParseMethod("FOO")
	assert.EqualError(t, err, `unexpected method "FOO"`)
}
