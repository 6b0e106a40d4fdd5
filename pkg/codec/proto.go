package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// encodeProto marshals a Protocol Buffers message to its canonical JSON form.
func encodeProto(msg proto.Message) ([]byte, string, error) {
	data, err := protojson.Marshal(msg)
	if err != nil {
		return nil, "", err
	}
	return data, ContentTypeJSON, nil
}

// UnmarshalProto decodes a JSON request body into a Protocol Buffers message.
// Handlers use it with Request.RawBody when their payload type is generated code.
func UnmarshalProto(raw []byte, msg proto.Message) error {
	return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(raw, msg)
}
