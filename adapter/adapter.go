package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
	"github.com/kbukum/nexus/stage"
)

// Adapter is a format-bound pipeline.
type Adapter interface {
	// ID is the pipeline identifier reported as Report.ProducerID.
	ID() string
	// Kind is the variant tag reported as Report.ProducerKind.
	Kind() Kind
	// Validate returns nil when p satisfies the adapter's shape contract,
	// otherwise a VALIDATION_ERROR. It has no side effects.
	Validate(p Payload) error
	// Process validates p, runs the chain and interprets p into a Report.
	// It never panics and never returns a nil Summary on success.
	Process(ctx context.Context, p Payload) Report
}

// Option configures an adapter.
type Option func(*pipeline)

// WithStages appends stages to the adapter's chain.
func WithStages(stages ...stage.Stage) Option {
	return func(p *pipeline) {
		for _, s := range stages {
			p.chain.Add(s)
		}
	}
}

// WithChain replaces the adapter's chain.
func WithChain(c *stage.Chain) Option {
	return func(p *pipeline) {
		if c != nil {
			p.chain = c
		}
	}
}

// WithMetrics records one report metric per Process call.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *pipeline) { p.metrics = m }
}

// WithInstrumentedStages wraps every stage of the final chain with logging
// under the "stage" logger, tracing, and the metrics set by WithMetrics.
func WithInstrumentedStages() Option {
	return func(p *pipeline) { p.instrumented = true }
}

type runIDKey struct{}

// ContextWithRunID makes Process reuse id as the Report's RunID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run id set by ContextWithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// variant is implemented by each adapter kind.
type variant interface {
	Validate(p Payload) error
	interpret(p Payload) Summary
}

// pipeline carries what every variant shares: identity, the owned chain and
// instrumentation.
type pipeline struct {
	id           string
	kind         Kind
	chain        *stage.Chain
	log          *logger.Logger
	metrics      *observability.Metrics
	instrumented bool
}

func newPipeline(id string, kind Kind, opts []Option) pipeline {
	p := pipeline{
		id:    id,
		kind:  kind,
		chain: stage.NewChain(),
		log:   logger.Get("adapter"),
	}
	for _, opt := range opts {
		opt(&p)
	}
	if p.instrumented {
		p.chain = stage.Instrument(p.chain, logger.Get("stage"), p.metrics, observability.SpanStage)
	}
	p.log = p.log.WithFields(logger.Fields(logger.FieldAdapter, id, logger.FieldKind, string(kind)))
	return p
}

// ID returns the pipeline identifier.
func (p *pipeline) ID() string { return p.id }

// Kind returns the variant tag.
func (p *pipeline) Kind() Kind { return p.kind }

// Chain returns the owned stage chain.
func (p *pipeline) Chain() *stage.Chain { return p.chain }

// AddStage appends s to the owned chain. Call during setup only.
func (p *pipeline) AddStage(s stage.Stage) { p.chain.Add(s) }

// run is the shared Process body: validate, run the chain, interpret.
func (p *pipeline) run(ctx context.Context, v variant, payload Payload) (report Report) {
	start := time.Now()
	runID, ok := RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAdapter)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	observability.SetSpanAttribute(ctx, observability.AttrAdapter, p.id)
	observability.SetSpanAttribute(ctx, observability.AttrKind, string(p.kind))

	report = Report{
		RunID:        runID,
		ProducerID:   p.id,
		ProducerKind: p.kind,
	}

	defer func() {
		if r := recover(); r != nil {
			report.Status = StatusFailure
			report.Summary = nil
			report.Cause = errors.Internal(nil).WithDetail("panic", r)
		}
		report.Duration = time.Since(start)
		p.observe(ctx, report)
	}()

	if err := v.Validate(payload); err != nil {
		report.Status = StatusFailure
		report.Cause = err
		return report
	}

	if _, err := p.chain.Run(ctx, payload); err != nil {
		report.Status = StatusFailure
		report.Cause = err
		return report
	}

	report.Status = StatusSuccess
	report.Summary = v.interpret(payload)
	return report
}

func (p *pipeline) observe(ctx context.Context, r Report) {
	observability.SetSpanAttribute(ctx, observability.AttrStatus, string(r.Status))
	p.metrics.RecordReport(ctx, p.id, string(p.kind), string(r.Status), r.Duration)

	if r.Succeeded() {
		p.log.Debug("payload processed", logger.Fields(
			logger.FieldRunID, r.RunID,
			"summary", r.Summary.String(),
			logger.FieldDuration, r.Duration.Milliseconds(),
		))
		return
	}

	observability.SetSpanError(ctx, r.Cause)
	p.metrics.RecordError(ctx, string(r.Code()), p.id)
	p.log.Warn("payload rejected", logger.Fields(
		logger.FieldRunID, r.RunID,
		logger.FieldError, r.Cause.Error(),
		"code", string(r.Code()),
	))
}
