package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// nanText is how the game writes a NaN float.
const nanText = `"NaN"`

// Float32 is a float field the game may write as the string "NaN". It decodes
// numbers, integers, and that exact string, and writes NaN back the same way.
type Float32 float32

// NaN returns a Float32 holding NaN.
func NaN() Float32 {
	return Float32(math.NaN())
}

// IsNaN reports whether f is NaN.
func (f Float32) IsNaN() bool {
	return f != f
}

// MarshalJSON emits "NaN" for NaN and a JSON number otherwise.
func (f Float32) MarshalJSON() ([]byte, error) {
	if f.IsNaN() {
		return []byte(nanText), nil
	}
	if math.IsInf(float64(f), 0) {
		return nil, fmt.Errorf("cannot encode %v", float32(f))
	}
	return json.Marshal(float32(f))
}

// UnmarshalJSON accepts a JSON number or the string "NaN".
func (f *Float32) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &SchemaError{Err: errors.New("empty value")}
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &SchemaError{Err: err}
		}
		if s != "NaN" {
			return &SchemaError{Err: fmt.Errorf("unexpected string %q for float", s)}
		}
		*f = NaN()
		return nil
	case 'n', 't', 'f', '{', '[':
		return &SchemaError{Err: fmt.Errorf("expected number or \"NaN\", got %s", data)}
	}

	var v float32
	if err := json.Unmarshal(data, &v); err != nil {
		return &SchemaError{Err: err}
	}
	*f = Float32(v)
	return nil
}
