// Package codec defines the serialization boundary of the networking layer.
//
// Encoder serializes an endpoint body to the bytes sent by a transport.
// Decoder maps the bytes of a response body to a target value.
// Both are pluggable and may carry their own policy, e.g. JSON number handling or date formats.
//
// JSON is the default implementation of both interfaces, see NewJSON.
// Form and Text cover "application/x-www-form-urlencoded" and plain text bodies.
package codec

// Encoder serializes a request body.
type Encoder interface {
	// Encode serializes the value.
	Encode(v any) ([]byte, error)
	// ContentType returns the media type of the encoded bytes.
	ContentType() string
}

// Decoder maps a response body to a value.
type Decoder interface {
	// Decode maps data to v, v must be a non-nil pointer or other writable target.
	Decode(data []byte, v any) error
}

// Codec is both Encoder and Decoder.
type Codec interface {
	Encoder
	Decoder
}
