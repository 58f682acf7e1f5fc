package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/nexus/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by stages, adapters and the coordinator.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	stageTotal        metric.Int64Counter
	stageDuration     metric.Float64Histogram
	reportTotal       metric.Int64Counter
	reportDuration    metric.Float64Histogram
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	recoveryTotal     metric.Int64Counter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.stageTotal, err = meter.Int64Counter("nexus.stage.total",
		metric.WithDescription("Total number of stage executions"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.stage.total counter: %w", err)
	}
	if m.stageDuration, err = meter.Float64Histogram("nexus.stage.duration",
		metric.WithDescription("Duration of stage executions in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.stage.duration histogram: %w", err)
	}
	if m.reportTotal, err = meter.Int64Counter("nexus.report.total",
		metric.WithDescription("Total number of adapter reports by status"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.report.total counter: %w", err)
	}
	if m.reportDuration, err = meter.Float64Histogram("nexus.report.duration",
		metric.WithDescription("Duration of adapter processing in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.report.duration histogram: %w", err)
	}
	if m.operationTotal, err = meter.Int64Counter("nexus.operation.total",
		metric.WithDescription("Total number of coordinator operations"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.operation.total counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("nexus.operation.duration",
		metric.WithDescription("Duration of coordinator operations in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.operation.duration histogram: %w", err)
	}
	if m.recoveryTotal, err = meter.Int64Counter("nexus.recovery.total",
		metric.WithDescription("Total number of fallback attempts by outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.recovery.total counter: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("nexus.error.total",
		metric.WithDescription("Total errors by code and component"),
	); err != nil {
		return nil, fmt.Errorf("creating nexus.error.total counter: %w", err)
	}

	return &m, nil
}

// RecordStage records one stage execution.
func (m *Metrics) RecordStage(ctx context.Context, stage, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	))
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordReport records one adapter report.
func (m *Metrics) RecordReport(ctx context.Context, adapter, kind, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.reportTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("adapter", adapter),
		attribute.String("kind", kind),
		attribute.String("status", status),
	))
	m.reportDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("adapter", adapter),
		attribute.String("kind", kind),
	))
}

// RecordOperation records a coordinator operation (broadcast, chain, recover, batch).
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordRecovery records a fallback attempt and whether it succeeded.
func (m *Metrics) RecordRecovery(ctx context.Context, primary, fallback string, recovered bool) {
	if m == nil {
		return
	}
	m.recoveryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("primary", primary),
		attribute.String("fallback", fallback),
		attribute.Bool("recovered", recovered),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
