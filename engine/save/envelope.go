package save

import "github.com/nathoo/sotftools/engine/record"

// Envelope is the versioned wrapper around every top-level save document.
// Version is carried through untouched.
type Envelope[T any] struct {
	Version string
	Data    T
	Extra   record.Residual
}

func (e *Envelope[T]) fields() []record.Field {
	return []record.Field{
		record.F("Version", &e.Version),
		record.F("Data", &e.Data),
	}
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	return record.Encode(e.fields(), e.Extra)
}

func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	*e = Envelope[T]{}
	return record.Decode(data, e.fields(), &e.Extra)
}
