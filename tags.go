package lens

import (
	"encoding/xml"
	"reflect"
	"strings"
)

// backend identifies a serialization backend with its own struct tag rules.
type backend int

const (
	backendJSON backend = iota
	backendYAML
	backendMsgpack
	backendBSON
	backendXML
)

func (b backend) String() string {
	switch b {
	case backendJSON:
		return "json"
	case backendYAML:
		return "yaml"
	case backendMsgpack:
		return "msgpack"
	case backendBSON:
		return "bson"
	case backendXML:
		return "xml"
	}
	return "unknown"
}

// fieldKey is how one backend names and treats a struct field.
type fieldKey struct {
	name        string // document key (element name for xml)
	space       string // xml namespace
	skip        bool   // tag "-": the backend never emits the field
	omitEmpty   bool
	omitZero    bool   // json ,omitzero
	quoted      bool   // json ,string
	flow        bool   // yaml ,flow
	attr        bool   // xml ,attr
	unsupported string // tag option the view cannot reproduce
}

// fieldPlan describes a single field of a record.
type fieldPlan struct {
	index   int    // reflect.Value.Field index
	goName  string // Go field name
	name    string // canonical name
	typ     reflect.Type
	tag     reflect.StructTag // declared tag, reused where a backend encodes a copy
	xmlName bool              // the encoding/xml XMLName field

	json    fieldKey
	yaml    fieldKey
	msgpack fieldKey
	xml     fieldKey
}

// splitTag separates a tag into its name and options.
func splitTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func hasOption(opts []string, opt string) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}

// canonicalName resolves the name a field is selected by.
// Priority: view tag > json tag name > Go field name.
func canonicalName(sf reflect.StructField, viewTag string) string {
	if viewTag != "" {
		name, _ := splitTag(viewTag)
		if name != "" {
			return name
		}
	}
	if jt, ok := sf.Tag.Lookup("json"); ok && jt != "-" {
		if name, _ := splitTag(jt); name != "" {
			return name
		}
	}
	return sf.Name
}

// jsonKey follows encoding/json field rules.
func jsonKey(sf reflect.StructField) fieldKey {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return fieldKey{skip: true}
	}
	name, opts := splitTag(tag)
	if name == "" {
		name = sf.Name
	}
	k := fieldKey{
		name:      name,
		omitEmpty: hasOption(opts, "omitempty"),
		omitZero:  hasOption(opts, "omitzero"),
	}
	if hasOption(opts, "string") {
		ft := sf.Type
		if ft.Name() == "" && ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64,
			reflect.String:
			k.quoted = true
		}
	}
	return k
}

// yamlKey follows gopkg.in/yaml.v3 field rules.
func yamlKey(sf reflect.StructField) fieldKey {
	tag := sf.Tag.Get("yaml")
	if tag == "" && !strings.Contains(string(sf.Tag), ":") {
		tag = string(sf.Tag)
	}
	if tag == "-" {
		return fieldKey{skip: true}
	}
	name, opts := splitTag(tag)
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	k := fieldKey{
		name:      name,
		omitEmpty: hasOption(opts, "omitempty"),
		flow:      hasOption(opts, "flow"),
	}
	if hasOption(opts, "inline") {
		k.unsupported = "inline"
	}
	return k
}

// msgpackKey follows vmihailenco/msgpack/v5 field rules with the default
// encoder settings.
func msgpackKey(sf reflect.StructField) fieldKey {
	name, opts := splitTag(sf.Tag.Get("msgpack"))
	if name == "-" {
		return fieldKey{skip: true}
	}
	if name == "" {
		name = sf.Name
	}
	k := fieldKey{
		name:      name,
		omitEmpty: hasOption(opts, "omitempty"),
	}
	if hasOption(opts, "intern") {
		k.unsupported = "intern"
	}
	return k
}

// xmlKey follows encoding/xml field rules for elements and attributes.
func xmlKey(sf reflect.StructField) fieldKey {
	tag := sf.Tag.Get("xml")
	if tag == "-" {
		return fieldKey{skip: true}
	}
	name, opts := splitTag(tag)
	var space string
	if i := strings.Index(name, " "); i >= 0 {
		space, name = name[:i], name[i+1:]
	}
	if name == "" {
		name = sf.Name
	}
	k := fieldKey{
		name:      name,
		space:     space,
		omitEmpty: hasOption(opts, "omitempty"),
		attr:      hasOption(opts, "attr"),
	}
	for _, o := range []string{"chardata", "cdata", "innerxml", "comment", "any"} {
		if hasOption(opts, o) {
			k.unsupported = o
		}
	}
	if strings.Contains(name, ">") {
		k.unsupported = name
	}
	return k
}

// xmlStart is the default root element of a record.
type xmlStart struct {
	name     xml.Name
	xmlIndex int // untagged XMLName field index, -1 when absent or tagged
}

var xmlNameType = reflect.TypeFor[xml.Name]()
