package lens

import (
	"context"
	"encoding/xml"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the view tag with sentinel
	sentinel.Tag("view")
}

// buildFields scans T and builds its field table.
func buildFields[T any]() (*Fields[T], error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, newConfigError(ErrInvalidRecord, rt.String(), "", rt.Kind().String())
	}

	meta := sentinel.Scan[T]()
	typeName := meta.TypeName
	if typeName == "" {
		typeName = rt.Name()
	}

	// encoding/xml drops the instantiation of generic type names.
	root, _, _ := strings.Cut(rt.Name(), "[")

	fs := &Fields[T]{
		typeName: typeName,
		byName:   make(map[string]Field[T], len(meta.Fields)),
		xmlStart: xmlStart{name: xml.Name{Local: root}, xmlIndex: -1},
	}

	// Embedded types have no single key across encodings.
	for i := 0; i < rt.NumField(); i++ {
		if sf := rt.Field(i); sf.Anonymous && sf.IsExported() {
			return nil, newConfigError(ErrEmbeddedField, typeName, sf.Name, "")
		}
	}

	// sentinel carries the registered tags; reflect stays authoritative for
	// which fields exist and their order.
	tags := make(map[string]map[string]string, len(meta.Fields))
	for _, field := range meta.Fields {
		if len(field.Index) == 1 {
			tags[field.Name] = field.Tags
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		viewTag, ok := tags[sf.Name]["view"]
		if !ok {
			viewTag = sf.Tag.Get("view")
		}

		plan := fieldPlan{
			index:   sf.Index[0],
			goName:  sf.Name,
			name:    canonicalName(sf, viewTag),
			typ:     sf.Type,
			tag:     sf.Tag,
			json:    jsonKey(sf),
			yaml:    yamlKey(sf),
			msgpack: msgpackKey(sf),
			xml:     xmlKey(sf),
		}

		if sf.Name == "XMLName" && sf.Type == xmlNameType {
			plan.xmlName = true
			// A tagged name wins over the field's value.
			if name, _ := splitTag(sf.Tag.Get("xml")); name != "" && name != "-" {
				fs.xmlStart.name = xml.Name{Space: plan.xml.space, Local: plan.xml.name}
			} else {
				fs.xmlStart.xmlIndex = sf.Index[0]
			}
		}

		if prev, dup := fs.byName[plan.name]; dup {
			return nil, newConfigError(ErrDuplicateField, typeName, sf.Name,
				plan.name+" also used by "+fs.plans[prev.pos-1].goName)
		}

		f := Field[T]{pos: len(fs.list) + 1, name: plan.name}
		fs.list = append(fs.list, f)
		fs.byName[plan.name] = f
		fs.plans = append(fs.plans, plan)
	}

	emitFieldsRegistered(context.Background(), typeName, len(fs.list))
	return fs, nil
}
