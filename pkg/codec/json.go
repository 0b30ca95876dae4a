package codec

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const ContentTypeApplicationJSON = "application/json"

// JSONConfig is the serialization policy of the JSON codec.
type JSONConfig struct {
	// EscapeHTML escapes <, > and & in encoded strings.
	EscapeHTML bool
	// SortMapKeys encodes map keys in sorted order.
	SortMapKeys bool
	// UseNumber decodes numbers to json.Number instead of float64.
	UseNumber bool
	// DisallowUnknownFields fails decoding if the body contains a field unknown to the target struct.
	DisallowUnknownFields bool
	// Indent enables indented output, if not empty.
	Indent string
}

// JSON codec is backed by json-iterator, it is faster than encoding/json for larger bodies.
type JSON struct {
	api    jsoniter.API
	indent string
}

// DefaultJSONConfig is compatible with the standard encoding/json package.
func DefaultJSONConfig() JSONConfig {
	return JSONConfig{EscapeHTML: true, SortMapKeys: true}
}

// NewJSON creates the JSON codec with the DefaultJSONConfig.
func NewJSON() JSON {
	return NewJSONWithConfig(DefaultJSONConfig())
}

// NewJSONWithConfig creates the JSON codec with a custom policy.
func NewJSONWithConfig(cfg JSONConfig) JSON {
	api := jsoniter.Config{
		EscapeHTML:             cfg.EscapeHTML,
		SortMapKeys:            cfg.SortMapKeys,
		UseNumber:              cfg.UseNumber,
		DisallowUnknownFields:  cfg.DisallowUnknownFields,
		ValidateJsonRawMessage: true,
	}.Froze()
	return JSON{api: api, indent: cfg.Indent}
}

func (c JSON) ContentType() string {
	return ContentTypeApplicationJSON
}

func (c JSON) Encode(v any) ([]byte, error) {
	var out []byte
	var err error
	if c.indent == "" {
		out, err = c.jsonAPI().Marshal(v)
	} else {
		out, err = c.jsonAPI().MarshalIndent(v, "", c.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot encode JSON body: %w", err)
	}
	return out, nil
}

func (c JSON) Decode(data []byte, v any) error {
	if err := c.jsonAPI().Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot decode JSON result: %w", err)
	}
	return nil
}

// jsonAPI makes the zero value usable.
func (c JSON) jsonAPI() jsoniter.API {
	if c.api == nil {
		return jsoniter.ConfigCompatibleWithStandardLibrary
	}
	return c.api
}
