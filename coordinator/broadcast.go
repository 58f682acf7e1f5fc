package coordinator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
)

// Broadcast processes payload with every registered adapter and returns one
// report per adapter in registration order. A failing adapter does not stop
// the others.
func (c *Coordinator) Broadcast(ctx context.Context, payload adapter.Payload) []adapter.Report {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanBroadcast)
	defer span.End()

	adapters := c.Adapters()
	reports := c.fanOut(ctx, len(adapters), func(ctx context.Context, i int) adapter.Report {
		return adapters[i].Process(ctx, payload)
	})

	failed := countFailed(reports)
	c.metrics.RecordOperation(ctx, "broadcast", statusOf(failed == 0), time.Since(start))
	c.log.Debug("broadcast complete", logger.Fields(
		"adapters", len(adapters),
		"failed", failed,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return reports
}

// ProcessBatch processes each payload with a and returns the reports in
// payload order.
func (c *Coordinator) ProcessBatch(ctx context.Context, a adapter.Adapter, payloads []adapter.Payload) []adapter.Report {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanBatch)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrAdapter, a.ID())

	reports := c.fanOut(ctx, len(payloads), func(ctx context.Context, i int) adapter.Report {
		return a.Process(ctx, payloads[i])
	})

	failed := countFailed(reports)
	c.metrics.RecordOperation(ctx, "batch", statusOf(failed == 0), time.Since(start))
	c.log.Debug("batch complete", logger.Fields(
		logger.FieldAdapter, a.ID(),
		"payloads", len(payloads),
		"failed", failed,
	))
	return reports
}

// fanOut runs fn for 0..n-1 under the coordinator's parallelism limit and
// collects the reports by index.
func (c *Coordinator) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) adapter.Report) []adapter.Report {
	reports := make([]adapter.Report, n)
	if n == 0 {
		return reports
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency(n))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			reports[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func countFailed(reports []adapter.Report) int {
	n := 0
	for _, r := range reports {
		if !r.Succeeded() {
			n++
		}
	}
	return n
}
