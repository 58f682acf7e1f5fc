package testutil

import (
	"context"
	"sync"

	"github.com/kbukum/nexus/stage"
)

// MockStage is a configurable test stage.
// It records calls and returns a preset output or error.
type MockStage struct {
	name   string
	output any
	err    error
	fn     func(ctx context.Context, in any) (any, error)

	mu     sync.Mutex
	calls  int
	inputs []any
}

var _ stage.Stage = (*MockStage)(nil)

// NewMockStage creates a stage that echoes its input.
func NewMockStage(name string) *MockStage {
	return &MockStage{name: name}
}

// NewFailingStage creates a stage that fails with err.
func NewFailingStage(name string, err error) *MockStage {
	return &MockStage{name: name, err: err}
}

// NewMockStageFunc creates a stage backed by fn.
func NewMockStageFunc(name string, fn func(ctx context.Context, in any) (any, error)) *MockStage {
	return &MockStage{name: name, fn: fn}
}

// Returning makes the stage return output instead of echoing its input.
func (s *MockStage) Returning(output any) *MockStage {
	s.output = output
	return s
}

func (s *MockStage) Name() string { return s.name }

func (s *MockStage) Process(ctx context.Context, in any) (any, error) {
	s.mu.Lock()
	s.calls++
	s.inputs = append(s.inputs, in)
	s.mu.Unlock()

	switch {
	case s.fn != nil:
		return s.fn(ctx, in)
	case s.err != nil:
		return nil, s.err
	case s.output != nil:
		return s.output, nil
	default:
		return in, nil
	}
}

// Calls returns how many times Process was invoked.
func (s *MockStage) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Inputs returns the inputs seen so far, in call order.
func (s *MockStage) Inputs() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Reset clears the call history.
func (s *MockStage) Reset() {
	s.mu.Lock()
	s.calls = 0
	s.inputs = nil
	s.mu.Unlock()
}
