package adapter

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/validation"
)

// Defaults used when a record lacks the configured keys.
const (
	DefaultValueKey = "value"
	DefaultUnitKey  = "unit"
	DefaultSubject  = "temperature"
	MissingValue    = "N/A"
)

// Range is an inclusive numeric band.
type Range struct {
	Min float64 `yaml:"min" mapstructure:"min"`
	Max float64 `yaml:"max" mapstructure:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies within the band.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// RecordOptions configures a RecordAdapter.
type RecordOptions struct {
	// ValueKey and UnitKey name the observed value and its unit.
	ValueKey string `yaml:"value_key" mapstructure:"value_key"`
	UnitKey  string `yaml:"unit_key" mapstructure:"unit_key"`
	// Subject names what is observed, e.g. "temperature".
	Subject string `yaml:"subject" mapstructure:"subject"`
	// RequiredKeys must all be present for a record to validate.
	RequiredKeys []string `yaml:"required_keys" mapstructure:"required_keys"`
	// Normal, when set, classifies numeric values outside it as out of range.
	Normal *Range `yaml:"normal" mapstructure:"normal"`
}

func (o *RecordOptions) applyDefaults() {
	if o.ValueKey == "" {
		o.ValueKey = DefaultValueKey
	}
	if o.UnitKey == "" {
		o.UnitKey = DefaultUnitKey
	}
	if o.Subject == "" {
		o.Subject = DefaultSubject
	}
}

// Observation is the RecordAdapter summary.
type Observation struct {
	Subject string
	Value   any
	Unit    string
	InRange bool
}

// RangeLabel describes InRange.
func (o Observation) RangeLabel() string {
	if o.InRange {
		return "Normal range"
	}
	return "Out of range"
}

func (o Observation) String() string {
	return fmt.Sprintf("Processed %s reading: %v%s (%s)", o.Subject, o.Value, o.Unit, o.RangeLabel())
}

// Fields exposes the observation under the default record keys.
func (o Observation) Fields() Record {
	return Record{
		"subject":       o.Subject,
		DefaultValueKey: o.Value,
		DefaultUnitKey:  o.Unit,
		"in_range":      o.InRange,
	}
}

// RecordAdapter processes key/value records.
type RecordAdapter struct {
	pipeline
	opts RecordOptions
}

// NewRecordAdapter creates a record adapter.
func NewRecordAdapter(id string, opts RecordOptions, options ...Option) *RecordAdapter {
	opts.applyDefaults()
	return &RecordAdapter{
		pipeline: newPipeline(id, KindRecord, options),
		opts:     opts,
	}
}

// Validate requires a key/value record holding every required key.
func (a *RecordAdapter) Validate(p Payload) error {
	rec, ok := recordOf(p)
	if !ok {
		return errors.Validation(fmt.Sprintf("%s expects a key/value record, got %T", a.id, p)).
			WithDetail("adapter", a.id)
	}
	if appErr := validation.New().RequiredKeys("record", rec, a.opts.RequiredKeys...).Validate(); appErr != nil {
		return appErr.WithDetail("adapter", a.id)
	}
	return nil
}

// Process runs the record through the chain and reports an Observation.
func (a *RecordAdapter) Process(ctx context.Context, p Payload) Report {
	return a.run(ctx, a, p)
}

func (a *RecordAdapter) interpret(p Payload) Summary {
	rec, _ := recordOf(p)

	obs := Observation{Subject: a.opts.Subject, Value: MissingValue, InRange: true}
	if v, ok := rec[a.opts.ValueKey]; ok && v != nil {
		obs.Value = v
	}
	if u, ok := rec[a.opts.UnitKey]; ok && u != nil {
		obs.Unit = fmt.Sprint(u)
	}
	if a.opts.Normal != nil {
		if f, err := cast.ToFloat64E(obs.Value); err == nil {
			obs.InRange = a.opts.Normal.Contains(f)
		}
	}
	return obs
}
