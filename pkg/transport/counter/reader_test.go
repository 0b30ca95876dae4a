package counter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	t.Parallel()
	r := NewReader(strings.NewReader("foo bar"))
	assert.Equal(t, int64(0), r.Bytes())

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(3), r.Bytes())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, " bar", string(rest))
	assert.Equal(t, int64(7), r.Bytes())
}
