package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/validation"
)

// Defaults for DelimitedOptions.
const (
	DefaultDelimiter = ","
	DefaultMarker    = "action"
)

// DelimitedOptions configures a DelimitedAdapter.
type DelimitedOptions struct {
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	Marker    string `yaml:"marker" mapstructure:"marker"`
}

func (o *DelimitedOptions) applyDefaults() {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
}

// TokenCount is the DelimitedAdapter summary.
type TokenCount struct {
	Tokens  int
	Markers int
	Marker  string
}

func (c TokenCount) String() string {
	return fmt.Sprintf("Activity logged: %d %q tokens of %d processed", c.Markers, c.Marker, c.Tokens)
}

// Fields exposes the counts; markers doubles as the record value.
func (c TokenCount) Fields() Record {
	return Record{
		"tokens":        c.Tokens,
		"markers":       c.Markers,
		"marker":        c.Marker,
		DefaultValueKey: c.Markers,
	}
}

// DelimitedAdapter processes delimited text lines.
type DelimitedAdapter struct {
	pipeline
	opts DelimitedOptions
}

// NewDelimitedAdapter creates a delimited-text adapter.
func NewDelimitedAdapter(id string, opts DelimitedOptions, options ...Option) *DelimitedAdapter {
	opts.applyDefaults()
	return &DelimitedAdapter{
		pipeline: newPipeline(id, KindDelimited, options),
		opts:     opts,
	}
}

// Validate requires text containing the delimiter.
func (a *DelimitedAdapter) Validate(p Payload) error {
	text, ok := textOf(p)
	if !ok {
		return errors.Validation(fmt.Sprintf("%s expects delimited text, got %T", a.id, p)).
			WithDetail("adapter", a.id)
	}
	if appErr := validation.New().Contains("text", text, a.opts.Delimiter).Validate(); appErr != nil {
		return appErr.WithDetail("adapter", a.id)
	}
	return nil
}

// Process runs the text through the chain and reports a TokenCount.
func (a *DelimitedAdapter) Process(ctx context.Context, p Payload) Report {
	return a.run(ctx, a, p)
}

func (a *DelimitedAdapter) interpret(p Payload) Summary {
	text, _ := textOf(p)
	tokens := strings.Split(text, a.opts.Delimiter)

	count := TokenCount{Tokens: len(tokens), Marker: a.opts.Marker}
	for _, tok := range tokens {
		if tok == a.opts.Marker {
			count.Markers++
		}
	}
	return count
}
