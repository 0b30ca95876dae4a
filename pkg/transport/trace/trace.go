// Package trace contains observers of the transport.HTTP for debugging and logging.
//
// LogObserver writes one line per event, DumpObserver writes full request and response dumps.
// Both are intended for development, the dump may contain unmasked tokens.
// ZapObserver writes structured logs, sensitive headers are redacted.
package trace

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const maskedValue = "****"

// sequence maps correlation IDs to short sequential numbers, for more readable logs.
// The number is released by the final event.
type sequence struct {
	lock   sync.Mutex
	last   uint64
	active map[uuid.UUID]uint64
}

func newSequence() *sequence {
	return &sequence{active: make(map[uuid.UUID]uint64)}
}

func (s *sequence) get(id uuid.UUID) uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	if v, found := s.active[id]; found {
		return v
	}
	s.last++
	s.active[id] = s.last
	return s.last
}

func (s *sequence) release(id uuid.UUID) uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, found := s.active[id]
	if !found {
		s.last++
		v = s.last
	}
	delete(s.active, id)
	return v
}

// defaultRedactedHeaders are masked by the ZapObserver, same list as in the otel package.
func defaultRedactedHeaders() map[string]struct{} {
	return map[string]struct{}{
		"authorization":       {},
		"www-authenticate":    {},
		"proxy-authenticate":  {},
		"proxy-authorization": {},
		"cookie":              {},
		"set-cookie":          {},
	}
}

// headerLines returns sorted "Key: value" lines.
func headerLines(header http.Header, redacted map[string]struct{}) []string {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		value := strings.Join(header[k], ";")
		if _, found := redacted[strings.ToLower(k)]; found {
			value = maskedValue
		}
		out = append(out, k+": "+value)
	}
	return out
}
