// Package decode handles Content-Encoding of response bodies.
package decode

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// AcceptEncoding lists encodings supported by the Reader function.
const AcceptEncoding = "gzip, br"

// Reader wraps the body to decode the content encoding.
// Unknown or empty encoding is returned unchanged with decoded=false.
// An empty body is a valid empty content for any known encoding.
// Closing the returned reader doesn't close the body.
func Reader(body io.Reader, contentEncoding string) (out io.Reader, decoded bool, err error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))
	switch encoding {
	case "gzip", "br":
	default:
		return body, false, nil
	}

	buffered := bufio.NewReader(body)
	if _, err := buffered.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return buffered, true, nil
		}
		return nil, false, fmt.Errorf("cannot decode %s: %w", encoding, err)
	}

	if encoding == "br" {
		return brotli.NewReader(buffered), true, nil
	}
	v, err := gzip.NewReader(buffered)
	if err != nil {
		return nil, false, fmt.Errorf("cannot decode gzip: %w", err)
	}
	return v, true, nil
}
