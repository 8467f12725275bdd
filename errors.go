package lens

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownField indicates a name did not resolve to a field of the record.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidRecord indicates the record type is not a struct.
	ErrInvalidRecord = errors.New("invalid record type")

	// ErrDuplicateField indicates two fields resolve to the same name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrEmbeddedField indicates the record embeds another type.
	ErrEmbeddedField = errors.New("embedded field")

	// ErrUnsupportedField indicates a field uses a tag option the view
	// cannot reproduce for a given encoding.
	ErrUnsupportedField = errors.New("unsupported field")

	// ErrNilRecord indicates a view over a nil record was encoded where
	// the format has no null document.
	ErrNilRecord = errors.New("nil record")
)

// UnknownFieldError reports a field name that is not part of a record.
type UnknownFieldError struct {
	Type string // Record type name
	Name string // Offending name, verbatim
}

func (e *UnknownFieldError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("unknown field %q", e.Name)
	}
	return fmt.Sprintf("unknown field %q for %s", e.Name, e.Type)
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

// ConfigError represents a record that cannot be viewed.
// It wraps a sentinel error with the record type and field involved.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrDuplicateField, etc.)
	Type   string // Record type name
	Field  string // Go field name that triggered the error
	Detail string // Extra context, e.g. the conflicting name or tag option
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Detail)
	}
	if e.Type != "" && e.Field != "" {
		return fmt.Sprintf("%s (field %s.%s)", msg, e.Type, e.Field)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s (type %s)", msg, e.Type)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", msg, e.Field)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newUnknownFieldError creates an UnknownFieldError.
func newUnknownFieldError(typeName, name string) error {
	return &UnknownFieldError{Type: typeName, Name: name}
}

// newConfigError creates a ConfigError for records that cannot be viewed.
func newConfigError(sentinel error, typeName, field, detail string) error {
	return &ConfigError{
		Err:    sentinel,
		Type:   typeName,
		Field:  field,
		Detail: detail,
	}
}
