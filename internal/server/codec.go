package server

import (
	"encoding/json"
)

// jsonCodec serializes plain Go structs. It replaces connect's protobuf
// based JSON codec, so messages need no generated code.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
