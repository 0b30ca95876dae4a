// Package counter counts bytes read from a response body.
package counter

import (
	"io"
)

// Reader wraps an io.Reader to count read bytes.
type Reader struct {
	wrapped io.Reader
	bytes   int64
}

func NewReader(wrapped io.Reader) *Reader {
	return &Reader{wrapped: wrapped}
}

// Bytes returns number of bytes read so far.
func (r *Reader) Bytes() int64 {
	return r.bytes
}

func (r *Reader) Read(b []byte) (int, error) {
	n, err := r.wrapped.Read(b)
	r.bytes += int64(n)
	return n, err
}
