package codec

import (
	"mime"
	"regexp"
)

const ContentTypeApplicationJSONRegexp = `^application/([a-zA-Z0-9\.\-]+\+)?json$`

var jsonContentTypeRegexp = regexp.MustCompile(ContentTypeApplicationJSONRegexp)

// IsJSONContentType returns true for "application/json" and "application/<vendor>+json" media types.
// Media type parameters, for example charset, are ignored.
func IsJSONContentType(contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	return jsonContentTypeRegexp.MatchString(contentType)
}
