package coordinator

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
)

// ErrEmptyChain is returned by Chain when no adapters are given.
var ErrEmptyChain = stderrors.New("coordinator: chain needs at least one adapter")

// Chain runs payload through adapters in order, feeding each report's
// summary to the next adapter. It returns the last report on success. At
// the first failure it stops and returns that report with Halt set; later
// adapters are not invoked. Every step shares one RunID.
func (c *Coordinator) Chain(ctx context.Context, payload adapter.Payload, adapters []adapter.Adapter) (adapter.Report, error) {
	if len(adapters) == 0 {
		return adapter.Report{}, ErrEmptyChain
	}

	start := time.Now()
	runID, ok := adapter.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = adapter.ContextWithRunID(ctx, runID)
	}
	ctx, span := observability.StartSpan(ctx, observability.SpanChain)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)

	log := c.log.WithFields(logger.Fields(logger.FieldRunID, runID))

	var report adapter.Report
	current := payload
	for step, a := range adapters {
		if err := ctx.Err(); err != nil {
			report = adapter.Report{
				RunID:        runID,
				Status:       adapter.StatusFailure,
				ProducerID:   a.ID(),
				ProducerKind: a.Kind(),
				Cause:        errors.Cancelled(err),
			}
		} else {
			report = a.Process(ctx, current)
		}

		if !report.Succeeded() {
			report.Halt = errors.ChainHalt(step, a.ID()).WithCause(report.Cause)
			observability.SetSpanError(ctx, report.Halt)
			c.metrics.RecordOperation(ctx, "chain", statusOf(false), time.Since(start))
			log.Warn("chain halted", logger.Fields(
				logger.FieldStep, step,
				logger.FieldAdapter, a.ID(),
				"code", string(report.Code()),
			))
			return report, nil
		}
		current = report.Summary
	}

	c.metrics.RecordOperation(ctx, "chain", statusOf(true), time.Since(start))
	log.Debug("chain complete", logger.Fields(
		"steps", len(adapters),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return report, nil
}

// ChainRegistered chains payload through every registered adapter in
// registration order.
func (c *Coordinator) ChainRegistered(ctx context.Context, payload adapter.Payload) (adapter.Report, error) {
	return c.Chain(ctx, payload, c.Adapters())
}
