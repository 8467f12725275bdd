// Package bson provides a BSON codec implementation.
//
// BSON documents must be maps or structs at the top level; views always
// encode as documents.
package bson

import (
	"github.com/zoobzio/lens"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements lens.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() lens.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
