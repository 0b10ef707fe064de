// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/zoobzio/verity"
	"go.mongodb.org/mongo-driver/bson"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/bson"

// bsonCodec implements verity.Codec for BSON.
// BSON documents must be structs or maps at the top level.
type bsonCodec struct{}

// New returns a BSON codec.
func New() verity.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
