package coordinator

import (
	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/validation"
)

// Config configures a Coordinator.
type Config struct {
	// MaxParallel bounds concurrent adapter runs (0 = unbounded).
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel" validate:"gte=0"`
	// Fallback is the Recover policy: "any" or "validation".
	Fallback FallbackPolicy `yaml:"fallback" mapstructure:"fallback" validate:"omitempty,oneof=any validation"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Fallback == "" {
		c.Fallback = AnyFailure
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.Config("invalid coordinator config").WithCause(err)
	}
	return nil
}

// Options converts the configuration into coordinator options.
func (c Config) Options() []Option {
	return []Option{
		WithMaxParallel(c.MaxParallel),
		WithFallbackPolicy(c.Fallback),
	}
}
