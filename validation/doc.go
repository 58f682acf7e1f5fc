// Package validation provides the validation utilities nexus uses for
// configuration structs and record payloads.
//
// # Struct Tag Validation
//
//	type DelimitedConfig struct {
//	    Delimiter string `mapstructure:"delimiter" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.RequiredKeys("payload", record, "value", "unit")
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
