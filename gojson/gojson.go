// Package gojson provides a JSON codec backed by github.com/goccy/go-json.
//
// Output matches the json package for views; goccy/go-json compacts the
// bytes a view's MarshalJSON returns, as encoding/json does.
package gojson

import (
	"github.com/goccy/go-json"
	"github.com/zoobzio/lens"
)

type gojsonCodec struct{}

// New returns a JSON codec.
func New() lens.Codec {
	return &gojsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *gojsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *gojsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *gojsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
