package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kbukum/nexus/errors"
)

// StreamOptions supplies the aggregate a StreamAdapter reports. The numbers
// come from configuration; the stream itself is treated as an opaque id.
type StreamOptions struct {
	Readings int     `yaml:"readings" mapstructure:"readings" validate:"gte=0"`
	Average  float64 `yaml:"average" mapstructure:"average"`
	Unit     string  `yaml:"unit" mapstructure:"unit"`
}

// DefaultStreamOptions returns the aggregate used when none is configured.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Readings: 5, Average: 22.1, Unit: "°C"}
}

// StreamSummary is the StreamAdapter summary.
type StreamSummary struct {
	Stream   string
	Readings int
	Average  float64
	Unit     string
}

func (s StreamSummary) String() string {
	return fmt.Sprintf("Stream summary: %d readings, avg: %s%s",
		s.Readings, strconv.FormatFloat(s.Average, 'f', -1, 64), s.Unit)
}

// Fields exposes the aggregate; the average doubles as the record value.
func (s StreamSummary) Fields() Record {
	return Record{
		"stream":        s.Stream,
		"readings":      s.Readings,
		DefaultValueKey: s.Average,
		DefaultUnitKey:  s.Unit,
	}
}

// StreamAdapter processes raw stream identifiers.
type StreamAdapter struct {
	pipeline
	opts StreamOptions
}

// NewStreamAdapter creates a raw-stream adapter.
func NewStreamAdapter(id string, opts StreamOptions, options ...Option) *StreamAdapter {
	return &StreamAdapter{
		pipeline: newPipeline(id, KindStream, options),
		opts:     opts,
	}
}

// Validate accepts any text value.
func (a *StreamAdapter) Validate(p Payload) error {
	if _, ok := textOf(p); !ok {
		return errors.Validation(fmt.Sprintf("%s expects a text stream id, got %T", a.id, p)).
			WithDetail("adapter", a.id)
	}
	return nil
}

// Process runs the stream id through the chain and reports a StreamSummary.
func (a *StreamAdapter) Process(ctx context.Context, p Payload) Report {
	return a.run(ctx, a, p)
}

func (a *StreamAdapter) interpret(p Payload) Summary {
	text, _ := textOf(p)
	return StreamSummary{
		Stream:   text,
		Readings: a.opts.Readings,
		Average:  a.opts.Average,
		Unit:     a.opts.Unit,
	}
}
