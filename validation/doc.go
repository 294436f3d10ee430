// Package validation checks configuration and input values and reports
// failures as a single unified Unspecified error naming every failing
// field.
//
// # Struct Tag Validation
//
//	type Output struct {
//	    Format string `mapstructure:"format" validate:"oneof=table json yaml binary"`
//	    Key    string `mapstructure:"key" validate:"omitempty,hexbytes=32"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("path", path).Hex("key", key, 32)
//	err := v.Validate()
package validation
