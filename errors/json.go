package errors

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// MarshalJSON encodes e as a tagged document, for example
//
//	{"kind":"InvalidHexCharacter","char":"g","index":3}
//	{"kind":"IoErr","io":{"kind":"NotFound"}}
func (e *Error) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toWire(e))
}

// UnmarshalJSON decodes a document written by MarshalJSON. Unknown tags are
// rejected.
func (e *Error) UnmarshalJSON(data []byte) error {
	var w wireError
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("errors: decode json: %w", err)
	}
	d, err := fromWire(w)
	if err != nil {
		return err
	}
	*e = *d
	return nil
}
