package adapter

import (
	"fmt"

	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/stage"
	"github.com/kbukum/nexus/validation"
)

// Config declares one adapter.
//
//	adapters:
//	  - id: CSV_PIPELINE_002
//	    kind: delimited
//	    stages: [input, transform, output]
//	    delimited:
//	      delimiter: ","
//	      marker: action
type Config struct {
	ID   string `yaml:"id" mapstructure:"id" validate:"required"`
	Kind Kind   `yaml:"kind" mapstructure:"kind" validate:"required,oneof=record delimited stream"`
	// Stages names registry stages in run order; nil means input, transform, output.
	Stages    []string         `yaml:"stages" mapstructure:"stages"`
	Record    RecordOptions    `yaml:"record" mapstructure:"record"`
	Delimited DelimitedOptions `yaml:"delimited" mapstructure:"delimited"`
	Stream    *StreamOptions   `yaml:"stream" mapstructure:"stream"`
}

// StageNames returns the configured stage names or the standard sequence.
func (c Config) StageNames() []string {
	if c.Stages != nil {
		return c.Stages
	}
	return []string{stage.NameInput, stage.NameTransform, stage.NameOutput}
}

// FromConfig builds an adapter from cfg, resolving stage names in reg.
// Options are applied after the configured chain is installed.
func FromConfig(cfg Config, reg *stage.Registry, opts ...Option) (Adapter, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, errors.Config(fmt.Sprintf("adapter %q: invalid config", cfg.ID)).WithCause(err)
	}
	if reg == nil {
		reg = stage.NewRegistry()
	}
	chain, err := reg.Build(cfg.StageNames()...)
	if err != nil {
		return nil, errors.Config(fmt.Sprintf("adapter %q: invalid stages", cfg.ID)).WithCause(err)
	}
	opts = append([]Option{WithChain(chain)}, opts...)

	switch cfg.Kind {
	case KindRecord:
		return NewRecordAdapter(cfg.ID, cfg.Record, opts...), nil
	case KindDelimited:
		return NewDelimitedAdapter(cfg.ID, cfg.Delimited, opts...), nil
	case KindStream:
		so := DefaultStreamOptions()
		if cfg.Stream != nil {
			so = *cfg.Stream
		}
		return NewStreamAdapter(cfg.ID, so, opts...), nil
	default:
		return nil, errors.Config(fmt.Sprintf("adapter %q: unknown kind %q", cfg.ID, cfg.Kind))
	}
}

// BuildAll builds every adapter in cfgs, in order.
func BuildAll(cfgs []Config, reg *stage.Registry, opts ...Option) ([]Adapter, error) {
	out := make([]Adapter, 0, len(cfgs))
	for _, cfg := range cfgs {
		a, err := FromConfig(cfg, reg, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
