package testing

import (
	"testing"

	"github.com/zoobzio/lens"
)

func TestNewProfile(t *testing.T) {
	p := NewProfile()
	if p.ID == "" || p.Email == "" || p.Password == "" {
		t.Errorf("NewProfile() should populate every field: %+v", p)
	}
}

func TestProfile_Names(t *testing.T) {
	fs, err := lens.Register[Profile]()
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	want := []string{"XMLName", "id", "email", "name", "age", "tags", "password", "settings"}
	got := fs.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMustView(t *testing.T) {
	view := MustView(t, NewProfile(), "id", "name")
	if view.Selected().Len() != 2 {
		t.Errorf("Selected().Len() = %d, want 2", view.Selected().Len())
	}
}

func TestAssertKeys(t *testing.T) {
	for name, c := range MapCodecs() {
		t.Run(name, func(t *testing.T) {
			data, err := c.Marshal(MustView(t, &SimpleUser{ID: "1", Name: "Alice"}, "name"))
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			AssertKeys(t, c, data, "name")
		})
	}
}
