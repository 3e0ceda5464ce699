package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Embedded is a field whose value is a whole JSON document stored in the
// parent as a string. Doc holds the decoded document; the string form is
// rebuilt on every encode.
type Embedded[T any] struct {
	Doc T
}

// MarshalJSON encodes Doc compactly and emits it as a JSON string.
func (e Embedded[T]) MarshalJSON() ([]byte, error) {
	inner, err := Marshal(e.Doc)
	if err != nil {
		return nil, err
	}
	return Marshal(string(inner))
}

// UnmarshalJSON expects a JSON string and decodes its contents into Doc.
func (e *Embedded[T]) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return &SchemaError{Err: fmt.Errorf("embedded document must be a JSON string: %w", err)}
	}

	var doc T
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			return err
		}
		return &SchemaError{Err: fmt.Errorf("embedded document: %w", err)}
	}
	e.Doc = doc
	return nil
}
