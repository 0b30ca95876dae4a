package codec

import (
	"fmt"
	"io"
)

const ContentTypeTextPlain = "text/plain; charset=utf-8"

// Text codec passes string and []byte bodies as they are.
type Text struct{}

func NewText() Text {
	return Text{}
}

func (Text) ContentType() string {
	return ContentTypeTextPlain
}

func (Text) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return []byte(v), nil
	case *string:
		return []byte(*v), nil
	case []byte:
		return v, nil
	case *[]byte:
		return *v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	case io.Reader:
		out, err := io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("cannot read text body: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot encode %T as a text body", v)
	}
}

func (Text) Decode(data []byte, v any) error {
	switch v := v.(type) {
	case *string:
		*v = string(data)
	case *[]byte:
		*v = append([]byte(nil), data...)
	case io.WriteCloser:
		if _, err := v.Write(data); err != nil {
			return fmt.Errorf("cannot write text result: %w", err)
		}
		if err := v.Close(); err != nil {
			return fmt.Errorf("cannot write text result: %w", err)
		}
	case io.Writer:
		if _, err := v.Write(data); err != nil {
			return fmt.Errorf("cannot write text result: %w", err)
		}
	default:
		return fmt.Errorf("cannot decode a text result to %T", v)
	}
	return nil
}
