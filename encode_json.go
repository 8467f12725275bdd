package lens

import (
	"bytes"
	"encoding/json"
	"reflect"
)

var (
	jsonNull   = []byte("null")
	zeroerType = reflect.TypeFor[interface{ IsZero() bool }]()
)

// MarshalJSON implements json.Marshaler.
//
// Keys follow the json tags of T; omitempty, omitzero and string are
// honored per field. Each included value is encoded by encoding/json
// exactly as it would be inside T, and its errors are returned unchanged.
// HTML characters are left unescaped; encoding/json applies the caller's
// escaping when it compacts the result.
func (v *View[T]) MarshalJSON() ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.record == nil {
		return jsonNull, nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	err := v.each(func(p *fieldPlan, fv reflect.Value) error {
		k := &p.json
		if k.skip {
			return nil
		}
		if k.omitEmpty && isEmptyJSON(fv) {
			return nil
		}
		if k.omitZero && isZeroJSON(fv) {
			return nil
		}

		data, err := marshalJSONValue(addrOf(fv))
		if err != nil {
			return err
		}
		if k.quoted && !bytes.Equal(data, jsonNull) && !hasJSONMarshaler(p.typ) {
			if data, err = marshalJSONValue(string(data)); err != nil {
				return err
			}
		}

		key, err := marshalJSONValue(k.name)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
		n++
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSONValue encodes v without HTML escaping.
func marshalJSONValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// addrOf returns a pointer to fv when it is addressable so pointer-receiver
// marshalers apply, as they do for fields of an addressable struct.
func addrOf(fv reflect.Value) any {
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return fv.Interface()
	}
	if fv.CanAddr() {
		return fv.Addr().Interface()
	}
	return fv.Interface()
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[interface{ MarshalText() ([]byte, error) }]()
)

func hasJSONMarshaler(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(jsonMarshalerType) || pt.Implements(jsonMarshalerType) ||
		t.Implements(textMarshalerType) || pt.Implements(textMarshalerType)
}

// isEmptyJSON mirrors encoding/json omitempty.
func isEmptyJSON(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

// isZeroJSON mirrors encoding/json omitzero.
func isZeroJSON(v reflect.Value) bool {
	t := v.Type()
	switch {
	case t.Kind() == reflect.Pointer && t.Implements(zeroerType):
		return v.IsNil() || v.Interface().(interface{ IsZero() bool }).IsZero()
	case t.Kind() == reflect.Interface && t.Implements(zeroerType):
		return v.IsNil() || v.Interface().(interface{ IsZero() bool }).IsZero()
	case t.Implements(zeroerType):
		return v.Interface().(interface{ IsZero() bool }).IsZero()
	case reflect.PointerTo(t).Implements(zeroerType):
		if !v.CanAddr() {
			tmp := reflect.New(t).Elem()
			tmp.Set(v)
			v = tmp
		}
		return v.Addr().Interface().(interface{ IsZero() bool }).IsZero()
	}
	return v.IsZero()
}
