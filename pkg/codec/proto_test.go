package codec

import (
	"encoding/json"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

// TestEncodeBodyProto tests that protobuf messages are encoded with protojson
func TestEncodeBodyProto(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]any{"name": "John", "age": 30})
	if err != nil {
		t.Fatalf("Failed to build struct: %v", err)
	}

	data, contentType, err := EncodeBody(msg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if contentType != ContentTypeJSON {
		t.Errorf("Expected content type %q, got %q", ContentTypeJSON, contentType)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v (%s)", err, data)
	}
	if decoded["name"] != "John" {
		t.Errorf("Expected name %q, got %v", "John", decoded["name"])
	}
	if decoded["age"] != float64(30) {
		t.Errorf("Expected age %v, got %v", 30, decoded["age"])
	}
}

// TestUnmarshalProto tests decoding a JSON body into a protobuf message
func TestUnmarshalProto(t *testing.T) {
	msg := &structpb.Struct{}
	if err := UnmarshalProto([]byte(`{"a":"b"}`), msg); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := msg.GetFields()["a"].GetStringValue(); got != "b" {
		t.Errorf("Expected %q, got %q", "b", got)
	}

	if err := UnmarshalProto([]byte("not-json"), &structpb.Struct{}); err == nil {
		t.Error("Expected an error for malformed input")
	}
}
