// Package lens serializes a struct with only a run-time selected subset of
// its fields.
//
// The same record type can back several API views ("summary", "detail")
// without a parallel struct per view. A View wraps a record and a field
// selection and implements the marshaler interface of every supported
// backend, so it is passed to the backend's ordinary entry point.
//
// # Fields
//
// Every exported, non-embedded field of a struct T is a Field[T]. Its name
// is taken from the view tag, else the json tag, else the Go field name:
//
//	type User struct {
//	    ID    string   `json:"id"`
//	    Email string   `json:"email,omitempty"`
//	    Tags  []string `json:"tags" view:"labels"`
//	}
//
//	var userFields = lens.MustRegister[User]()
//
// Field[User] and Field[Order] are different types; a selection built for
// one record cannot be applied to another. Names must be unique per type,
// which Register checks.
//
// # Views
//
//	view, err := lens.Of(&user).WithNames("id", "email")
//	data, err := json.Marshal(view)
//
//	set, err := userFields.ParseList(r.URL.Query().Get("fields"))
//	view, err = lens.Of(&user).WithFields(set.Fields()...)
//
// An empty selection emits every field. There is no "select nothing".
// Builder methods are atomic: an unknown name leaves the selection as it
// was.
//
// # Encoding
//
// Included fields appear in declaration order with the key, omission rules
// and value encoding the backend would apply to T itself:
//
//   - encoding/json and github.com/goccy/go-json (json.Marshaler)
//   - gopkg.in/yaml.v3 (yaml.Marshaler)
//   - github.com/vmihailenco/msgpack/v5 (msgpack.CustomEncoder)
//   - go.mongodb.org/mongo-driver/bson (bson.Marshaler)
//   - encoding/xml (xml.Marshaler)
//
// Errors from encoding a value are returned unchanged.
//
// # Renderers
//
// A Renderer binds a Codec to a record type and emits capitan signals
// around each render:
//
//	r, _ := lens.Use[User](json.New())
//	data, err := r.RenderList(ctx, &user, "id,email")
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - gojson - JSON encoding via goccy/go-json (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package lens

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
