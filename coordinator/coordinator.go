package coordinator

import (
	"sync"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
)

// Coordinator holds an ordered list of adapters.
// Registration and processing may overlap; each operation works on the
// adapters registered when it started.
type Coordinator struct {
	mu       sync.RWMutex
	adapters []adapter.Adapter

	maxParallel int
	policy      FallbackPolicy
	log         *logger.Logger
	metrics     *observability.Metrics
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMaxParallel bounds concurrent adapter runs in Broadcast and
// ProcessBatch (0 = one goroutine per run).
func WithMaxParallel(n int) Option {
	return func(c *Coordinator) {
		if n >= 0 {
			c.maxParallel = n
		}
	}
}

// WithFallbackPolicy sets which primary failures Recover falls back on.
func WithFallbackPolicy(p FallbackPolicy) Option {
	return func(c *Coordinator) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithMetrics records operation and recovery metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// New creates an empty coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		policy: AnyFailure,
		log:    logger.Get("coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register appends a to the adapter list. Duplicate ids are kept and logged.
func (c *Coordinator) Register(a adapter.Adapter) {
	if a == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.adapters {
		if existing.ID() == a.ID() {
			c.log.Warn("duplicate adapter id registered", logger.Fields(
				logger.FieldAdapter, a.ID(),
				logger.FieldKind, string(a.Kind()),
			))
			break
		}
	}
	c.adapters = append(c.adapters, a)
	c.log.Debug("adapter registered", logger.Fields(
		logger.FieldAdapter, a.ID(),
		logger.FieldKind, string(a.Kind()),
		"position", len(c.adapters)-1,
	))
}

// Adapters returns the registered adapters in registration order.
func (c *Coordinator) Adapters() []adapter.Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]adapter.Adapter, len(c.adapters))
	copy(out, c.adapters)
	return out
}

// Len returns the number of registered adapters.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.adapters)
}

// Lookup returns the first registered adapter with id.
func (c *Coordinator) Lookup(id string) (adapter.Adapter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.adapters {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// concurrency returns the errgroup limit for n runs.
func (c *Coordinator) concurrency(n int) int {
	if c.maxParallel <= 0 || c.maxParallel > n {
		return n
	}
	return c.maxParallel
}

func statusOf(ok bool) string {
	if ok {
		return string(adapter.StatusSuccess)
	}
	return string(adapter.StatusFailure)
}
