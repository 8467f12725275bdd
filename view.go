package lens

import "reflect"

// View binds a record to a field selection for one serialization call.
//
// An empty selection means "every field", not "no fields". There is no way
// to select nothing; a view that emits an empty object is only produced by
// a record without fields.
//
// Builder methods mutate and return the same view so calls chain. They are
// atomic: when a name does not resolve, the error is returned together with
// the unchanged view. Views are not safe for concurrent use; the record is
// only read, so independent views over the same record may encode in
// parallel.
type View[T any] struct {
	record   *T
	fields   *Fields[T]
	selected Set[T]
	err      error
}

// Of returns a view over record with an empty selection.
//
// If T cannot be viewed (see Register), every builder method and every
// encode returns that error.
func Of[T any](record *T) *View[T] {
	fs, err := Register[T]()
	return &View[T]{
		record:   record,
		fields:   fs,
		selected: make(Set[T]),
		err:      err,
	}
}

// Err returns the error that made T unviewable, if any.
func (v *View[T]) Err() error { return v.err }

// Record returns the viewed record.
func (v *View[T]) Record() *T { return v.record }

// Fields returns T's field table. It is nil when Err is not nil.
func (v *View[T]) Fields() *Fields[T] { return v.fields }

// Selected returns a copy of the selection.
func (v *View[T]) Selected() Set[T] { return v.selected.clone() }

// Includes reports whether f would be emitted.
func (v *View[T]) Includes(f Field[T]) bool {
	return len(v.selected) == 0 || v.selected.Has(f)
}

// WithFields replaces the selection with fields.
func (v *View[T]) WithFields(fields ...Field[T]) (*View[T], error) {
	if v.err != nil {
		return v, v.err
	}
	set, err := v.fields.resolve(fields)
	if err != nil {
		return v, err
	}
	v.selected = set
	return v, nil
}

// WithNames replaces the selection with the named fields.
func (v *View[T]) WithNames(names ...string) (*View[T], error) {
	if v.err != nil {
		return v, v.err
	}
	set, err := v.fields.ParseAll(names...)
	if err != nil {
		return v, err
	}
	v.selected = set
	return v, nil
}

// AddFields adds fields to the selection.
func (v *View[T]) AddFields(fields ...Field[T]) (*View[T], error) {
	if v.err != nil {
		return v, v.err
	}
	set, err := v.fields.resolve(fields)
	if err != nil {
		return v, err
	}
	v.merge(set)
	return v, nil
}

// AddNames adds the named fields to the selection.
func (v *View[T]) AddNames(names ...string) (*View[T], error) {
	if v.err != nil {
		return v, v.err
	}
	set, err := v.fields.ParseAll(names...)
	if err != nil {
		return v, err
	}
	v.merge(set)
	return v, nil
}

// AddField adds a single field to the selection.
func (v *View[T]) AddField(f Field[T]) (*View[T], error) {
	return v.AddFields(f)
}

// AddName adds a single named field to the selection.
func (v *View[T]) AddName(name string) (*View[T], error) {
	return v.AddNames(name)
}

func (v *View[T]) merge(set Set[T]) {
	for f := range set {
		v.selected[f] = struct{}{}
	}
}

// each calls fn for every selected field in declaration order.
func (v *View[T]) each(fn func(p *fieldPlan, value reflect.Value) error) error {
	rv := reflect.ValueOf(v.record).Elem()
	all := len(v.selected) == 0
	for i := range v.fields.plans {
		if !all && !v.selected.Has(v.fields.list[i]) {
			continue
		}
		p := &v.fields.plans[i]
		if err := fn(p, rv.Field(p.index)); err != nil {
			return err
		}
	}
	return nil
}
