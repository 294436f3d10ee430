package errors

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML emits the same tagged document shape as MarshalJSON.
func (e *Error) MarshalYAML() (any, error) {
	if e == nil {
		return nil, nil
	}
	return toWire(e), nil
}

// UnmarshalYAML decodes a tagged document.
func (e *Error) UnmarshalYAML(value *yaml.Node) error {
	var w wireError
	if err := value.Decode(&w); err != nil {
		return fmt.Errorf("errors: decode yaml: %w", err)
	}
	d, err := fromWire(w)
	if err != nil {
		return err
	}
	*e = *d
	return nil
}
