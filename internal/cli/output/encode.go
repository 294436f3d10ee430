package output

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/jsonerr"
)

// PrintJSON writes data as indented JSON.
func PrintJSON(w io.Writer, data any) *errors.Error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return jsonerr.Translate(encoder.Encode(data))
}

// PrintYAML writes data as YAML.
func PrintYAML(w io.Writer, data any) *errors.Error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		_ = encoder.Close()
		return errors.Serialization(err.Error())
	}
	if err := encoder.Close(); err != nil {
		return errors.Serialization(err.Error())
	}
	return nil
}
