package lens

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// MarshalBSON implements bson.Marshaler.
//
// The included fields are copied into a struct type built from their
// original declarations and tags, which the driver's struct codec then
// encodes. Every bson tag option, including minsize and inline, applies as
// it does for T. A view over a nil record fails with ErrNilRecord because
// BSON has no null document.
func (v *View[T]) MarshalBSON() ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.record == nil {
		return nil, newConfigError(ErrNilRecord, v.fields.typeName, "", "")
	}

	var (
		decl   []reflect.StructField
		values []reflect.Value
	)
	err := v.each(func(p *fieldPlan, fv reflect.Value) error {
		decl = append(decl, reflect.StructField{Name: p.goName, Type: p.typ, Tag: p.tag})
		values = append(values, fv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := reflect.New(reflect.StructOf(decl))
	for i, fv := range values {
		doc.Elem().Field(i).Set(fv)
	}
	return bson.Marshal(doc.Interface())
}
