// Package codec provides encoding and decoding functionality for request and response bodies.
package codec

import (
	"encoding/json"
	"mime"
	"reflect"
	"strings"

	"google.golang.org/protobuf/proto"
)

// ContentTypeJSON is the Content-Type set on responses whose body was encoded to JSON.
const ContentTypeJSON = "application/json; charset=utf-8"

// IsJSON reports whether a Content-Type header value names a JSON media type,
// either application/json or any structured "+json" type.
func IsJSON(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Tolerate malformed parameters, the media type is all we need
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// DecodeBody converts a raw request body into the value handlers see.
// A JSON content type with a payload that parses yields the decoded value
// (map[string]any, []any, float64, ...). Anything else, including malformed
// JSON, yields the raw body as a string.
func DecodeBody(contentType string, raw []byte) any {
	if IsJSON(contentType) {
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			return data
		}
	}
	return string(raw)
}

// EncodeBody serializes a response body for the wire.
// Strings and byte slices pass through with no content type. Protocol Buffers
// messages are encoded with protojson. Any other non-nil value is encoded with
// encoding/json. A nil body, including a nil map, slice or pointer, yields
// no bytes.
// The returned content type is empty when the body should keep whatever
// Content-Type the handlers set.
func EncodeBody(body any) ([]byte, string, error) {
	if isNil(body) {
		return nil, "", nil
	}

	switch b := body.(type) {
	case string:
		return []byte(b), "", nil
	case []byte:
		return b, "", nil
	case proto.Message:
		return encodeProto(b)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return data, ContentTypeJSON, nil
}

// isNil reports whether body is nil or a nil map, slice or pointer.
func isNil(body any) bool {
	if body == nil {
		return true
	}
	switch v := reflect.ValueOf(body); v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
