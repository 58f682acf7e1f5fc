package stage

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/nexus/errors"
)

// Chain is an ordered, appendable sequence of stages.
// Add is safe to call concurrently with Run; a run sees the stages present
// when it started.
type Chain struct {
	mu     sync.RWMutex
	stages []Stage
}

// NewChain creates a chain holding stages in order.
func NewChain(stages ...Stage) *Chain {
	c := &Chain{}
	for _, s := range stages {
		c.Add(s)
	}
	return c
}

// Add appends a stage and returns the chain. Nil stages are ignored.
func (c *Chain) Add(s Stage) *Chain {
	if s == nil {
		return c
	}
	c.mu.Lock()
	c.stages = append(c.stages, s)
	c.mu.Unlock()
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stages)
}

// Stages returns a copy of the stage sequence.
func (c *Chain) Stages() []Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Names returns the stage names in order.
func (c *Chain) Names() []string {
	stages := c.Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

// Run folds initial through every stage in order and returns the last output.
// It stops at the first failing stage with errors.StageFailure, or with
// errors.Cancelled when ctx ends between stages.
func (c *Chain) Run(ctx context.Context, initial any) (any, error) {
	value := initial
	for i, s := range c.Stages() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err).WithDetail("stage_index", i)
		}
		out, err := runStage(ctx, s, value)
		if err != nil {
			return nil, errors.StageFailure(i, s.Name(), err)
		}
		value = out
	}
	return value, nil
}

// runStage converts a panicking stage into an error.
func runStage(ctx context.Context, s Stage, input any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return s.Process(ctx, input)
}

// Concat returns a new chain running every stage of chains in order.
// Running a then b is equivalent to running Concat(a, b).
func Concat(chains ...*Chain) *Chain {
	out := &Chain{}
	for _, c := range chains {
		if c == nil {
			continue
		}
		out.stages = append(out.stages, c.Stages()...)
	}
	return out
}
