package lens

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler.
//
// The result is a mapping node whose keys follow the yaml tags of T, with
// omitempty and flow honored. Values are encoded by yaml.v3 as they would
// be inside T.
func (v *View[T]) MarshalYAML() (any, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.record == nil {
		return nil, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	err := v.each(func(p *fieldPlan, fv reflect.Value) error {
		k := &p.yaml
		if k.skip {
			return nil
		}
		if k.unsupported != "" {
			return unsupportedError(v.fields.typeName, p, backendYAML, k.unsupported)
		}
		if k.omitEmpty && isZeroYAML(fv) {
			return nil
		}

		value := &yaml.Node{}
		if err := value.Encode(fv.Interface()); err != nil {
			return err
		}
		if k.flow {
			value.Style |= yaml.FlowStyle
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k.name},
			value,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// isZeroYAML mirrors yaml.v3 omitempty.
func isZeroYAML(v reflect.Value) bool {
	kind := v.Kind()
	if z, ok := v.Interface().(yaml.IsZeroer); ok {
		if (kind == reflect.Pointer || kind == reflect.Interface) && v.IsNil() {
			return true
		}
		return z.IsZero()
	}
	switch kind {
	case reflect.String:
		return len(v.String()) == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Struct:
		vt := v.Type()
		for i := v.NumField() - 1; i >= 0; i-- {
			if !vt.Field(i).IsExported() {
				continue
			}
			if !isZeroYAML(v.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}

// unsupportedError reports a tag option that a backend cannot reproduce.
func unsupportedError(typeName string, p *fieldPlan, b backend, option string) error {
	return newConfigError(ErrUnsupportedField, typeName, p.goName, b.String()+":"+option)
}
