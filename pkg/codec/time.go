package codec

import (
	"bytes"
	"fmt"
	"time"

	"github.com/relvacode/iso8601"
)

// Time is decoded from any ISO 8601 date/time and encoded in RFC 3339.
type Time time.Time

// UnmarshalJSON implements JSON decoding.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf(`time must be a JSON string, found %s`, data)
	}
	v, err := iso8601.Parse(data[1 : len(data)-1])
	if err != nil {
		return fmt.Errorf(`cannot parse ISO 8601 time %s: %w`, data, err)
	}
	*t = Time(v)
	return nil
}

// MarshalJSON implements JSON encoding.
func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(time.RFC3339)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, time.RFC3339)
	b = append(b, '"')
	return b, nil
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}
