// Package codec provides the body codecs used by the HTTP client.
// A codec pairs a serialization format with the Content-Type it is sent and
// recognized under.
package codec

import (
	"mime"
	"strings"
)

// Codec defines the serialization contract for request and response bodies.
type Codec interface {
	// Marshal serializes v to bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes data into v.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type bodies are sent with.
	ContentType() string

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// Codec names for configuration.
const (
	NameJSON    = "json"
	NameMsgpack = "msgpack"
)

// Content types recognized on responses.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// Get returns a codec by name. Defaults to JSON.
func Get(name string) Codec {
	switch name {
	case NameMsgpack:
		return &Msgpack{}
	case NameJSON, "":
		return &JSON{}
	default:
		return &JSON{}
	}
}

// ForContentType returns the codec matching a Content-Type header value, or
// nil when the media type is not one of ours.
func ForContentType(header string) Codec {
	if header == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return nil
	}
	switch {
	case mediaType == ContentTypeJSON, strings.HasSuffix(mediaType, "+json"):
		return &JSON{}
	case mediaType == ContentTypeMsgpack, mediaType == "application/x-msgpack", mediaType == "application/vnd.msgpack":
		return &Msgpack{}
	default:
		return nil
	}
}
