package yaml

import (
	"testing"

	"github.com/zoobzio/lens"
)

type server struct {
	Host    string            `yaml:"host" view:"host"`
	Port    int               `yaml:"port,omitempty" view:"port"`
	Tags    []string          `yaml:"tags,flow"`
	Labels  map[string]string `yaml:"labels"`
	Comment string
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalView(t *testing.T) {
	c := New()
	rec := server{Host: "db.internal", Port: 5432, Tags: []string{"primary", "eu"}}

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"single", []string{"host"}, "host: db.internal\n"},
		{"flow", []string{"Tags"}, "tags: [primary, eu]\n"},
		{"declaration order", []string{"port", "host"}, "host: db.internal\nport: 5432\n"},
		{"default key", []string{"Comment"}, "comment: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := lens.Of(&rec).WithNames(tt.names...)
			if err != nil {
				t.Fatalf("WithNames() error: %v", err)
			}
			data, err := c.Marshal(view)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestMarshalViewUnfiltered(t *testing.T) {
	rec := server{
		Host:   "db.internal",
		Tags:   []string{"primary"},
		Labels: map[string]string{"zone": "a"},
	}

	for _, c := range []lens.Codec{New(), NewIndent(2)} {
		got, err := c.Marshal(lens.Of(&rec))
		if err != nil {
			t.Fatalf("Marshal(view) error: %v", err)
		}
		want, err := c.Marshal(&rec)
		if err != nil {
			t.Fatalf("Marshal(record) error: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("Marshal(view) = %q, want %q", got, want)
		}
	}
}

func TestUnmarshalFilteredOutput(t *testing.T) {
	c := New()
	rec := server{Host: "db.internal", Port: 5432}

	view, err := lens.Of(&rec).WithNames("port")
	if err != nil {
		t.Fatalf("WithNames() error: %v", err)
	}
	data, err := c.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored server
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Port != 5432 || restored.Host != "" {
		t.Errorf("restored = %+v, want only port", restored)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v server
	if err := c.Unmarshal([]byte("host: [invalid"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
