package apiv1

import (
	"encoding/json"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StorageRefPrefix marks an image_url that points into object storage rather
// than holding an inline data URI.
const StorageRefPrefix = "s3:"

// IsStorageRef reports whether an image_url is an object-storage reference.
func IsStorageRef(imageURL string) bool {
	return strings.HasPrefix(imageURL, StorageRefPrefix)
}

// EncodeStruct converts a free-form map into the JSON form stored in
// segmentation_data. Values must be representable as google.protobuf.Struct.
func EncodeStruct(m map[string]any) (json.RawMessage, error) {
	if m == nil {
		return nil, nil
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// DecodeStruct is the inverse of EncodeStruct. Empty input yields nil.
func DecodeStruct(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
