package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/nexus/adapter"
)

// MockAdapter is a configurable test adapter.
// By default it accepts every payload and reports a TextSummary of it.
type MockAdapter struct {
	id       string
	kind     adapter.Kind
	validate func(p adapter.Payload) error
	fail     error
	delay    time.Duration

	mu       sync.Mutex
	calls    int
	payloads []adapter.Payload
}

var _ adapter.Adapter = (*MockAdapter)(nil)

// NewMockAdapter creates an adapter that always succeeds.
func NewMockAdapter(id string, kind adapter.Kind) *MockAdapter {
	return &MockAdapter{id: id, kind: kind}
}

// NewFailingAdapter creates an adapter whose Process always fails with err.
func NewFailingAdapter(id string, kind adapter.Kind, err error) *MockAdapter {
	return &MockAdapter{id: id, kind: kind, fail: err}
}

// WithValidate installs a shape contract; rejected payloads fail without
// counting as a call.
func (a *MockAdapter) WithValidate(fn func(p adapter.Payload) error) *MockAdapter {
	a.validate = fn
	return a
}

// WithDelay makes Process sleep for d or until ctx ends.
func (a *MockAdapter) WithDelay(d time.Duration) *MockAdapter {
	a.delay = d
	return a
}

func (a *MockAdapter) ID() string { return a.id }

func (a *MockAdapter) Kind() adapter.Kind { return a.kind }

func (a *MockAdapter) Validate(p adapter.Payload) error {
	if a.validate != nil {
		return a.validate(p)
	}
	return nil
}

func (a *MockAdapter) Process(ctx context.Context, p adapter.Payload) adapter.Report {
	r := adapter.Report{ProducerID: a.id, ProducerKind: a.kind}
	if id, ok := adapter.RunIDFromContext(ctx); ok {
		r.RunID = id
	}
	if err := a.Validate(p); err != nil {
		r.Status = adapter.StatusFailure
		r.Cause = err
		return r
	}

	a.mu.Lock()
	a.calls++
	a.payloads = append(a.payloads, p)
	a.mu.Unlock()

	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
		}
	}
	if a.fail != nil {
		r.Status = adapter.StatusFailure
		r.Cause = a.fail
		return r
	}
	r.Status = adapter.StatusSuccess
	r.Summary = TextSummary{Text: a.id, Input: p}
	return r
}

// Calls returns how many payloads passed validation and were processed.
func (a *MockAdapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Payloads returns the processed payloads in call order.
func (a *MockAdapter) Payloads() []adapter.Payload {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]adapter.Payload, len(a.payloads))
	copy(out, a.payloads)
	return out
}

// TextSummary is the summary produced by MockAdapter.
type TextSummary struct {
	Text  string
	Input adapter.Payload
}

func (s TextSummary) String() string { return s.Text }

func (s TextSummary) Fields() adapter.Record {
	return adapter.Record{"value": s.Text, "input": s.Input}
}
