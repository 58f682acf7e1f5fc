package stage

import "context"

// Stage is a single transform step. Process must be a pure function of its
// input so one Stage value can serve concurrent chains.
type Stage interface {
	Name() string
	Process(ctx context.Context, input any) (any, error)
}

// ProcessFunc is the signature of a stage body.
type ProcessFunc func(ctx context.Context, input any) (any, error)

// New wraps fn as a named Stage.
func New(name string, fn ProcessFunc) Stage {
	return &funcStage{name: name, fn: fn}
}

type funcStage struct {
	name string
	fn   ProcessFunc
}

func (s *funcStage) Name() string { return s.name }

func (s *funcStage) Process(ctx context.Context, input any) (any, error) {
	return s.fn(ctx, input)
}

// Passthrough returns a stage that hands its input on unchanged.
func Passthrough(name string) Stage {
	return New(name, func(_ context.Context, input any) (any, error) {
		return input, nil
	})
}

// Built-in pass-through stage names.
const (
	NameInput     = "input"
	NameTransform = "transform"
	NameOutput    = "output"
)

// Standard returns the input, transform, output pass-through sequence.
func Standard() []Stage {
	return []Stage{
		Passthrough(NameInput),
		Passthrough(NameTransform),
		Passthrough(NameOutput),
	}
}
