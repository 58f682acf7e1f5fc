package coordinator

import (
	"context"
	"time"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
)

// FallbackPolicy selects which primary failures Recover falls back on.
type FallbackPolicy string

const (
	// AnyFailure falls back on every primary failure.
	AnyFailure FallbackPolicy = "any"
	// ValidationOnly falls back only when the primary rejected the payload's
	// shape, leaving stage failures to the caller.
	ValidationOnly FallbackPolicy = "validation"
)

// Allows reports whether a failed primary report qualifies for fallback.
func (p FallbackPolicy) Allows(r adapter.Report) bool {
	if r.Succeeded() {
		return false
	}
	switch p {
	case ValidationOnly:
		return errors.IsValidation(r.Cause)
	default:
		return true
	}
}

// Recover processes payload with primary. If primary fails and the policy
// allows it, fallback processes the same payload exactly once. A successful
// fallback report is marked Recovered; whenever the fallback ran its report
// carries the primary failure as PrimaryCause.
func (c *Coordinator) Recover(ctx context.Context, payload adapter.Payload, primary, fallback adapter.Adapter) adapter.Report {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanRecover)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrAdapter, primary.ID())

	first := primary.Process(ctx, payload)
	if first.Succeeded() || fallback == nil || !c.policy.Allows(first) {
		c.metrics.RecordOperation(ctx, "recover", statusOf(first.Succeeded()), time.Since(start))
		return first
	}

	c.log.Info("primary failed, trying fallback", logger.Fields(
		logger.FieldRunID, first.RunID,
		"primary", primary.ID(),
		"fallback", fallback.ID(),
		"code", string(first.Code()),
	))

	second := fallback.Process(adapter.ContextWithRunID(ctx, first.RunID), payload)
	second.PrimaryCause = first.Cause
	second.Recovered = second.Succeeded()

	observability.SetSpanAttribute(ctx, observability.AttrRecovered, second.Recovered)
	c.metrics.RecordRecovery(ctx, primary.ID(), fallback.ID(), second.Recovered)
	c.metrics.RecordOperation(ctx, "recover", statusOf(second.Succeeded()), time.Since(start))
	if !second.Recovered {
		c.log.Warn("fallback failed", logger.Fields(
			logger.FieldRunID, second.RunID,
			"fallback", fallback.ID(),
			"code", string(second.Code()),
		))
	}
	return second
}
