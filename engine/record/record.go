// Package record implements the JSON codec shared by every save document:
// records that decode a fixed set of known fields and carry every other key
// through untouched, plus the field-level adapters for string-embedded
// documents and "NaN"-tolerant floats.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Residual holds the keys of a JSON object that a record does not model.
// Values are kept as raw JSON so they re-encode exactly as they were read.
type Residual map[string]json.RawMessage

// Field binds a wire name to the Go value that stores it.
type Field struct {
	Name string
	Ptr  any
	// Nullable fields accept JSON null. A nil value is written back as null
	// when the key was present in the input and omitted when it was absent.
	Nullable bool
}

// F is shorthand for a required field.
func F(name string, ptr any) Field {
	return Field{Name: name, Ptr: ptr}
}

// Opt is shorthand for a nullable field (pointers and lists).
func Opt(name string, ptr any) Field {
	return Field{Name: name, Ptr: ptr, Nullable: true}
}

// SchemaError reports JSON that does not fit the save model.
type SchemaError struct {
	Field string // dotted path, empty for the top-level value
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema: " + e.Err.Error()
	}
	return fmt.Sprintf("schema: field %s: %v", e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// schemaErr wraps err as a SchemaError under field, extending the path of an
// inner SchemaError instead of nesting a second one.
func schemaErr(field string, err error) error {
	var se *SchemaError
	if errors.As(err, &se) {
		path := field
		if se.Field != "" {
			path = field + "." + se.Field
		}
		return &SchemaError{Field: path, Err: se.Err}
	}
	return &SchemaError{Field: field, Err: err}
}

// Decode reads a JSON object into fields, storing every unknown key in rest.
// Known fields that are absent keep their current value. null is a
// SchemaError unless the field is nullable; a nullable field read as null is
// also recorded in rest as a null marker.
func Decode(data []byte, fields []Field, rest *Residual) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return &SchemaError{Err: err}
	}
	if obj == nil {
		return &SchemaError{Err: errors.New("expected object, got null")}
	}

	for _, f := range fields {
		raw, ok := obj[f.Name]
		if !ok {
			continue
		}
		if isNull(raw) {
			if !f.Nullable {
				return schemaErr(f.Name, errors.New("unexpected null"))
			}
			// The null stays in the residual so Encode writes the key back.
			if err := json.Unmarshal(raw, f.Ptr); err != nil {
				return schemaErr(f.Name, err)
			}
			continue
		}
		delete(obj, f.Name)
		if err := json.Unmarshal(raw, f.Ptr); err != nil {
			return schemaErr(f.Name, err)
		}
	}

	if len(obj) == 0 {
		*rest = nil
		return nil
	}
	*rest = Residual(obj)
	return nil
}

// Encode writes fields merged with rest as a single JSON object. Known fields
// win over residual keys with the same name, except that a nil nullable field
// leaves a residual null marker in place.
func Encode(fields []Field, rest Residual) ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(rest)+len(fields))
	for k, v := range rest {
		obj[k] = v
	}

	for _, f := range fields {
		b, err := Marshal(f.Ptr)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Name, err)
		}
		if f.Nullable && isNull(b) {
			if v, ok := rest[f.Name]; !ok || !isNull(v) {
				delete(obj, f.Name)
			}
			continue
		}
		obj[f.Name] = b
	}

	return Marshal(obj)
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Marshal is json.Marshal without HTML escaping, so strings the game wrote
// (including embedded documents) come back out unchanged.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
