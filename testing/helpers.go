// Package testing provides test utilities for lens.
package testing

import (
	"encoding/xml"
	"slices"
	"testing"

	"github.com/zoobzio/lens"
	"github.com/zoobzio/lens/bson"
	"github.com/zoobzio/lens/gojson"
	"github.com/zoobzio/lens/json"
	"github.com/zoobzio/lens/msgpack"
	"github.com/zoobzio/lens/yaml"
)

// SimpleUser is a test type with matching keys in every map encoding.
type SimpleUser struct {
	ID   string `json:"id" yaml:"id" msgpack:"id" bson:"id"`
	Name string `json:"name" yaml:"name" msgpack:"name" bson:"name"`
}

// Profile is a test type tagged for every supported encoding.
// Its canonical names come from the view tag where json would collide.
type Profile struct {
	XMLName  xml.Name          `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"profile"`
	ID       string            `json:"id" yaml:"id" msgpack:"id" bson:"_id" xml:"id,attr"`
	Email    string            `json:"email,omitempty" yaml:"email,omitempty" msgpack:"email,omitempty" bson:"email,omitempty" xml:"email,omitempty"`
	Name     string            `json:"name" yaml:"name" msgpack:"name" bson:"name" xml:"name"`
	Age      int               `json:"age" yaml:"age" msgpack:"age" bson:"age" xml:"age"`
	Tags     []string          `json:"tags" yaml:"tags" msgpack:"tags" bson:"tags" xml:"tag"`
	Password string            `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"-" view:"password"`
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty" msgpack:"settings,omitempty" bson:"settings,omitempty" xml:"-"`
}

// NewProfile returns a fully populated Profile.
func NewProfile() *Profile {
	return &Profile{
		ID:       "p-1",
		Email:    "ada@example.com",
		Name:     "Ada Lovelace",
		Age:      36,
		Tags:     []string{"math", "engines"},
		Password: "hunter2",
		Settings: map[string]string{"theme": "dark"},
	}
}

// MapCodecs returns the codecs whose output decodes into a map.
func MapCodecs() map[string]lens.Codec {
	return map[string]lens.Codec{
		"json":    json.New(),
		"gojson":  gojson.New(),
		"yaml":    yaml.New(),
		"msgpack": msgpack.New(),
		"bson":    bson.New(),
	}
}

// MustView returns a view over record narrowed to names.
func MustView[T any](tb testing.TB, record *T, names ...string) *lens.View[T] {
	tb.Helper()
	view, err := lens.Of(record).WithNames(names...)
	if err != nil {
		tb.Fatalf("WithNames(%v) error: %v", names, err)
	}
	return view
}

// DecodeKeys decodes data with c and returns its top-level keys, sorted.
func DecodeKeys(tb testing.TB, c lens.Codec, data []byte) []string {
	tb.Helper()
	var m map[string]any
	if err := c.Unmarshal(data, &m); err != nil {
		tb.Fatalf("%s Unmarshal() error: %v", c.ContentType(), err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// AssertKeys fails tb unless data decodes to exactly the keys in want.
func AssertKeys(tb testing.TB, c lens.Codec, data []byte, want ...string) {
	tb.Helper()
	want = slices.Clone(want)
	slices.Sort(want)
	if got := DecodeKeys(tb, c, data); !slices.Equal(got, want) {
		tb.Errorf("%s keys = %v, want %v", c.ContentType(), got, want)
	}
}
