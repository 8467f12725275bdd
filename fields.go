package lens

import (
	"iter"
	"slices"
	"strings"
)

// DefaultSeparator splits field lists in ParseList and Renderer.RenderList.
const DefaultSeparator = ","

// Fields is the field table for record type T: one Field per exported,
// non-embedded struct field, in declaration order, each with a unique
// canonical name.
//
// Tables are immutable once built and safe for concurrent use. Obtain one
// with Register or MustRegister.
type Fields[T any] struct {
	typeName string
	list     []Field[T]
	byName   map[string]Field[T]
	plans    []fieldPlan
	xmlStart xmlStart
}

// TypeName returns the record type name.
func (fs *Fields[T]) TypeName() string { return fs.typeName }

// Len returns the number of fields.
func (fs *Fields[T]) Len() int { return len(fs.list) }

// All returns every field in declaration order.
func (fs *Fields[T]) All() []Field[T] {
	return slices.Clone(fs.list)
}

// Names returns every canonical name in declaration order.
func (fs *Fields[T]) Names() []string {
	names := make([]string, len(fs.list))
	for i, f := range fs.list {
		names[i] = f.name
	}
	return names
}

// Name returns the canonical name of f.
func (fs *Fields[T]) Name(f Field[T]) string { return f.name }

// Parse resolves a canonical name. Matching is exact: no case folding and
// no trimming.
func (fs *Fields[T]) Parse(name string) (Field[T], error) {
	f, ok := fs.byName[name]
	if !ok {
		return Field[T]{}, newUnknownFieldError(fs.typeName, name)
	}
	return f, nil
}

// ParseSeq resolves every name in names. It stops at the first unknown
// name and returns its error; no partial set is returned.
func (fs *Fields[T]) ParseSeq(names iter.Seq[string]) (Set[T], error) {
	set := make(Set[T])
	for name := range names {
		f, err := fs.Parse(name)
		if err != nil {
			return nil, err
		}
		set[f] = struct{}{}
	}
	return set, nil
}

// ParseAll resolves every name. See ParseSeq.
func (fs *Fields[T]) ParseAll(names ...string) (Set[T], error) {
	return fs.ParseSeq(slices.Values(names))
}

// ParseDelimited splits s on sep and resolves every element.
//
// An empty s yields a single empty element, which is not a field name, so
// ParseDelimited("", ",") fails with ErrUnknownField. Callers that want
// "no list means all fields" must check for the empty string themselves.
func (fs *Fields[T]) ParseDelimited(s, sep string) (Set[T], error) {
	return fs.ParseSeq(strings.SplitSeq(s, sep))
}

// ParseList is ParseDelimited with DefaultSeparator.
func (fs *Fields[T]) ParseList(s string) (Set[T], error) {
	return fs.ParseDelimited(s, DefaultSeparator)
}

// valid reports whether f belongs to this table.
func (fs *Fields[T]) valid(f Field[T]) bool {
	return f.pos > 0 && f.pos <= len(fs.list) && fs.list[f.pos-1] == f
}

// resolve checks typed fields against the table.
func (fs *Fields[T]) resolve(fields []Field[T]) (Set[T], error) {
	set := make(Set[T], len(fields))
	for _, f := range fields {
		if !fs.valid(f) {
			return nil, newUnknownFieldError(fs.typeName, f.name)
		}
		set[f] = struct{}{}
	}
	return set, nil
}

// Parse resolves name against T's field table.
func Parse[T any](name string) (Field[T], error) {
	fs, err := Register[T]()
	if err != nil {
		return Field[T]{}, err
	}
	return fs.Parse(name)
}

// ParseAll resolves names against T's field table.
func ParseAll[T any](names ...string) (Set[T], error) {
	fs, err := Register[T]()
	if err != nil {
		return nil, err
	}
	return fs.ParseAll(names...)
}

// ParseList resolves a comma separated list against T's field table.
func ParseList[T any](s string) (Set[T], error) {
	fs, err := Register[T]()
	if err != nil {
		return nil, err
	}
	return fs.ParseList(s)
}
