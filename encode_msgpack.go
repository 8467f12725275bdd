package lens

import (
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMsgpack implements msgpack.CustomEncoder.
//
// The view is written as a map keyed by the msgpack tags of T, honoring
// omitempty. Values go through the encoder's own codec for each field type.
// Interned fields are rejected with ErrUnsupportedField.
func (v *View[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if v.err != nil {
		return v.err
	}
	if v.record == nil {
		return enc.EncodeNil()
	}

	type entry struct {
		key   string
		value reflect.Value
	}
	var entries []entry
	err := v.each(func(p *fieldPlan, fv reflect.Value) error {
		k := &p.msgpack
		if k.skip || (k.omitEmpty && isEmptyMsgpack(fv)) {
			return nil
		}
		if k.unsupported != "" {
			return unsupportedError(v.fields.typeName, p, backendMsgpack, k.unsupported)
		}
		entries = append(entries, entry{key: k.name, value: fv})
		return nil
	})
	if err != nil {
		return err
	}

	if err := enc.EncodeMapLen(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := enc.EncodeString(e.key); err != nil {
			return err
		}
		if err := enc.EncodeValue(e.value); err != nil {
			return err
		}
	}
	return nil
}

// isEmptyMsgpack mirrors msgpack/v5 omitempty for the default encoder.
func isEmptyMsgpack(v reflect.Value) bool {
	kind := v.Kind()
	for kind == reflect.Interface {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
		kind = v.Kind()
	}

	if z, ok := v.Interface().(interface{ IsZero() bool }); ok {
		nilable := kind == reflect.Pointer || kind == reflect.Map || kind == reflect.Slice ||
			kind == reflect.Chan || kind == reflect.Func || kind == reflect.Interface
		return nilable && v.IsNil() || z.IsZero()
	}

	switch kind {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Struct:
		return exportedFieldCount(v.Type()) == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func exportedFieldCount(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			n++
		}
	}
	return n
}
