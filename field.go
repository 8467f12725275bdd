package lens

import (
	"reflect"
	"slices"
)

// Field identifies one declared field of record type T.
//
// Field values are comparable and may be used as map keys. A Field[User]
// and a Field[Order] are distinct types, so a selection built for one record
// can never be applied to another.
//
// The zero Field is invalid. Obtain fields from a Fields table, Parse, or
// FieldOf.
type Field[T any] struct {
	pos  int // 1-based declaration position; 0 means invalid
	name string
}

// Name returns the canonical field name.
func (f Field[T]) Name() string { return f.name }

// String returns the canonical field name.
func (f Field[T]) String() string { return f.name }

// IsValid reports whether f was produced by a field table.
func (f Field[T]) IsValid() bool { return f.pos > 0 }

// MarshalText implements encoding.TextMarshaler.
func (f Field[T]) MarshalText() ([]byte, error) {
	return []byte(f.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by parsing the
// canonical name against T's field table.
func (f *Field[T]) UnmarshalText(text []byte) error {
	parsed, err := Parse[T](string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Set is a selection of fields of T.
// An empty Set selects every field.
type Set[T any] map[Field[T]]struct{}

// NewSet returns a set holding the given fields.
func NewSet[T any](fields ...Field[T]) Set[T] {
	s := make(Set[T], len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set.
func (s Set[T]) Has(f Field[T]) bool {
	_, ok := s[f]
	return ok
}

// Len returns the number of fields in the set.
func (s Set[T]) Len() int { return len(s) }

// Fields returns the members in declaration order.
func (s Set[T]) Fields() []Field[T] {
	out := make([]Field[T], 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Field[T]) int { return a.pos - b.pos })
	return out
}

// Names returns the member names in declaration order.
func (s Set[T]) Names() []string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Equal reports whether both sets hold the same fields.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for f := range s {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

func (s Set[T]) clone() Set[T] {
	out := make(Set[T], len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

// FieldOf returns the field of T addressed by selector.
// The selector must return the address of a top-level field, e.g.:
//
//	lens.FieldOf(func(u *User) *string { return &u.Email })
//
// Renaming or removing the struct field breaks the build rather than a
// string lookup at run time. FieldOf panics if T cannot be viewed or the
// selector does not address a top-level field.
func FieldOf[T any, F any](selector func(*T) *F) Field[T] {
	if selector == nil {
		panic("lens.FieldOf: selector must not be nil")
	}
	fs := MustRegister[T]()

	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	for i, p := range fs.plans {
		fv := rv.Field(p.index)
		if fv.CanAddr() && fv.Addr().Pointer() == target && fv.Type() == reflect.TypeFor[F]() {
			return fs.list[i]
		}
	}
	panic("lens.FieldOf: selector must return the address of a top-level field of " + fs.typeName)
}
