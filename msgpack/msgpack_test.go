package msgpack

import (
	"bytes"
	"testing"

	"github.com/zoobzio/lens"
)

type event struct {
	ID      string            `msgpack:"id"`
	Kind    string            `msgpack:"kind,omitempty"`
	Payload []byte            `msgpack:"payload"`
	Meta    map[string]string `msgpack:"meta"`
	Seq     uint64
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshalViewUnfiltered(t *testing.T) {
	c := New()
	rec := event{ID: "e-1", Payload: []byte{0x00, 0xff}, Meta: map[string]string{"k": "v"}, Seq: 9}

	got, err := c.Marshal(lens.Of(&rec))
	if err != nil {
		t.Fatalf("Marshal(view) error: %v", err)
	}
	want, err := c.Marshal(&rec)
	if err != nil {
		t.Fatalf("Marshal(record) error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Marshal(view) = %x, want %x", got, want)
	}
}

func TestMarshalViewFiltered(t *testing.T) {
	c := New()
	rec := event{ID: "e-1", Kind: "created", Payload: []byte("x"), Seq: 3}

	view, err := lens.Of(&rec).WithNames("Seq", "ID")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := c.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var got map[string]any
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("keys = %v, want id and Seq", got)
	}
	if got["id"] != "e-1" {
		t.Errorf("id = %v, want %q", got["id"], "e-1")
	}
	if _, ok := got["Seq"]; !ok {
		t.Error("Seq missing")
	}
}

func TestMarshalViewOmitEmpty(t *testing.T) {
	c := New()
	rec := event{ID: "e-1"}

	view, err := lens.Of(&rec).WithNames("Kind")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := c.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	// fixmap with zero entries
	if !bytes.Equal(data, []byte{0x80}) {
		t.Errorf("Marshal() = %x, want 80", data)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v event
	if err := c.Unmarshal([]byte{0xc1}, &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
