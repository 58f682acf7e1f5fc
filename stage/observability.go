package stage

import (
	"context"
	"time"

	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
)

// WithTracing wraps a Stage with OpenTelemetry span creation.
// Each execution creates a span named "{prefix}.{stageName}".
func WithTracing(s Stage, prefix string) Stage {
	return &tracingStage{inner: s, prefix: prefix}
}

type tracingStage struct {
	inner  Stage
	prefix string
}

func (s *tracingStage) Name() string { return s.inner.Name() }

func (s *tracingStage) Process(ctx context.Context, input any) (any, error) {
	ctx, span := observability.StartSpan(ctx, s.prefix+"."+s.inner.Name())
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrStage, s.inner.Name())

	out, err := s.inner.Process(ctx, input)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return out, err
}

// WithMetrics wraps a Stage with execution count and duration recording.
func WithMetrics(s Stage, metrics *observability.Metrics) Stage {
	return &metricsStage{inner: s, metrics: metrics}
}

type metricsStage struct {
	inner   Stage
	metrics *observability.Metrics
}

func (s *metricsStage) Name() string { return s.inner.Name() }

func (s *metricsStage) Process(ctx context.Context, input any) (any, error) {
	start := time.Now()
	out, err := s.inner.Process(ctx, input)

	status := "ok"
	if err != nil {
		status = "error"
		s.metrics.RecordError(ctx, "stage", s.inner.Name())
	}
	s.metrics.RecordStage(ctx, s.inner.Name(), status, time.Since(start))
	return out, err
}

// WithLogging wraps a Stage with execution logging.
func WithLogging(s Stage, log *logger.Logger) Stage {
	return &loggingStage{inner: s, log: log}
}

type loggingStage struct {
	inner Stage
	log   *logger.Logger
}

func (s *loggingStage) Name() string { return s.inner.Name() }

func (s *loggingStage) Process(ctx context.Context, input any) (any, error) {
	start := time.Now()
	out, err := s.inner.Process(ctx, input)

	fields := logger.DurationFields("stage", time.Since(start))
	fields[logger.FieldStage] = s.inner.Name()
	if err != nil {
		s.log.Error("stage failed", logger.MergeWithError(fields, err))
	} else {
		s.log.Debug("stage completed", fields)
	}
	return out, err
}

// Instrument applies logging, metrics and tracing to every stage of c and
// returns the wrapped chain. Nil log or metrics skip that layer.
func Instrument(c *Chain, log *logger.Logger, metrics *observability.Metrics, tracePrefix string) *Chain {
	out := NewChain()
	for _, s := range c.Stages() {
		if log != nil {
			s = WithLogging(s, log)
		}
		if metrics != nil {
			s = WithMetrics(s, metrics)
		}
		if tracePrefix != "" {
			s = WithTracing(s, tracePrefix)
		}
		out.Add(s)
	}
	return out
}
