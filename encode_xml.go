package lens

import (
	"encoding"
	"encoding/xml"
	"reflect"
	"strconv"
)

var (
	xmlMarshalerType     = reflect.TypeFor[xml.Marshaler]()
	xmlMarshalerAttrType = reflect.TypeFor[xml.MarshalerAttr]()
	xmlTextMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	xmlAttrType          = reflect.TypeFor[xml.Attr]()
)

// MarshalXML implements xml.Marshaler.
//
// The root element is the one encoding/xml would use for T: the XMLName
// tag or value, else the type name. Fields become attributes or child
// elements per their xml tags; omitempty is honored.
func (v *View[T]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if v.err != nil {
		return v.err
	}
	if v.record == nil {
		return nil
	}

	start = v.xmlRoot(start)

	type element struct {
		name  xml.Name
		value reflect.Value
	}
	var children []element
	err := v.each(func(p *fieldPlan, fv reflect.Value) error {
		k := &p.xml
		if k.skip || p.xmlName {
			return nil
		}
		if k.unsupported != "" {
			return unsupportedError(v.fields.typeName, p, backendXML, k.unsupported)
		}
		if k.omitEmpty && isEmptyXML(fv) {
			return nil
		}
		name := xml.Name{Space: k.space, Local: k.name}
		if k.attr {
			return appendXMLAttr(&start, name, fv)
		}
		children = append(children, element{name: name, value: fv})
		return nil
	})
	if err != nil {
		return err
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range children {
		if err := encodeXMLElement(e, c.value, c.name); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// encodeXMLElement writes fv as one or more elements named name. Slices
// repeat the element per item, and each struct item may rename itself
// through its XMLName.
func encodeXMLElement(e *xml.Encoder, fv reflect.Value, name xml.Name) error {
	for fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface {
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}
	if hasXMLMarshaler(fv) {
		return e.EncodeElement(addrOf(fv), xml.StartElement{Name: name})
	}
	if (fv.Kind() == reflect.Slice || fv.Kind() == reflect.Array) && fv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < fv.Len(); i++ {
			if err := encodeXMLElement(e, fv.Index(i), name); err != nil {
				return err
			}
		}
		return nil
	}
	return e.EncodeElement(addrOf(fv), xml.StartElement{Name: xmlElementName(fv, name)})
}

func hasXMLMarshaler(fv reflect.Value) bool {
	if _, ok := marshalerFor(fv, xmlMarshalerType); ok {
		return true
	}
	_, ok := marshalerFor(fv, xmlTextMarshalerType)
	return ok
}

// xmlRoot picks the root element. A start named after View itself comes
// from xml.Marshal on the view and is replaced by T's own root.
func (v *View[T]) xmlRoot(start xml.StartElement) xml.StartElement {
	if start.Name.Local != "" && start.Name.Local != reflect.TypeFor[View[T]]().Name() {
		return start
	}
	root := xml.StartElement{Name: v.fields.xmlStart.name, Attr: start.Attr}
	if idx := v.fields.xmlStart.xmlIndex; idx >= 0 {
		rv := reflect.ValueOf(v.record).Elem()
		if name := rv.Field(idx).Interface().(xml.Name); name.Local != "" {
			root.Name = name
		}
	}
	return root
}

// xmlElementName applies the XMLName of a struct value, which encoding/xml
// prefers over the field name.
func xmlElementName(fv reflect.Value, name xml.Name) xml.Name {
	if fv.Kind() != reflect.Struct {
		return name
	}
	sf, ok := fv.Type().FieldByName("XMLName")
	if !ok || sf.Type != xmlNameType || len(sf.Index) != 1 {
		return name
	}
	if tag, _ := splitTag(sf.Tag.Get("xml")); tag != "" && tag != "-" {
		k := xmlKey(sf)
		return xml.Name{Space: k.space, Local: k.name}
	}
	if n := fv.Field(sf.Index[0]).Interface().(xml.Name); n.Local != "" {
		return n
	}
	return name
}

// isEmptyXML mirrors encoding/xml omitempty.
func isEmptyXML(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// appendXMLAttr encodes fv as an attribute of start the way encoding/xml
// encodes ,attr fields.
func appendXMLAttr(start *xml.StartElement, name xml.Name, fv reflect.Value) error {
	if fv.Kind() == reflect.Interface && fv.IsNil() {
		return nil
	}

	if m, ok := marshalerFor(fv, xmlMarshalerAttrType); ok {
		attr, err := m.(xml.MarshalerAttr).MarshalXMLAttr(name)
		if err != nil {
			return err
		}
		if attr.Name.Local != "" {
			start.Attr = append(start.Attr, attr)
		}
		return nil
	}

	if m, ok := marshalerFor(fv, xmlTextMarshalerType); ok {
		text, err := m.(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		start.Attr = append(start.Attr, xml.Attr{Name: name, Value: string(text)})
		return nil
	}

	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}

	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < fv.Len(); i++ {
			if err := appendXMLAttr(start, name, fv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	if fv.Type() == xmlAttrType {
		start.Attr = append(start.Attr, fv.Interface().(xml.Attr))
		return nil
	}

	s, err := xmlSimple(fv)
	if err != nil {
		return err
	}
	start.Attr = append(start.Attr, xml.Attr{Name: name, Value: s})
	return nil
}

// marshalerFor returns fv, or its address, as an implementation of iface.
func marshalerFor(fv reflect.Value, iface reflect.Type) (any, bool) {
	if fv.CanInterface() && fv.Type().Implements(iface) {
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			return nil, false
		}
		return fv.Interface(), true
	}
	if fv.CanAddr() {
		pv := fv.Addr()
		if pv.CanInterface() && pv.Type().Implements(iface) {
			return pv.Interface(), true
		}
	}
	return nil, false
}

func xmlSimple(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return string(b), nil
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), nil
		}
	}
	return "", &xml.UnsupportedTypeError{Type: v.Type()}
}
