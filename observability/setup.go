package observability

import (
	"context"
	"errors"
)

// Config selects which OpenTelemetry pipelines a binary starts.
type Config struct {
	TracingEnabled bool         `yaml:"tracing_enabled" mapstructure:"tracing_enabled"`
	MetricsEnabled bool         `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
	Tracer         TracerConfig `yaml:"tracer" mapstructure:"tracer"`
	Meter          MeterConfig  `yaml:"meter" mapstructure:"meter"`
}

// ApplyDefaults fills exporter settings that were left empty.
func (c *Config) ApplyDefaults(serviceName string) {
	td := DefaultTracerConfig(serviceName)
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = td.ServiceName
	}
	if c.Tracer.ServiceVersion == "" {
		c.Tracer.ServiceVersion = td.ServiceVersion
	}
	if c.Tracer.Endpoint == "" {
		c.Tracer.Endpoint = td.Endpoint
		c.Tracer.Insecure = td.Insecure
	}
	if c.Tracer.SampleRate == 0 {
		c.Tracer.SampleRate = td.SampleRate
	}

	md := DefaultMeterConfig(serviceName)
	if c.Meter.ServiceName == "" {
		c.Meter.ServiceName = md.ServiceName
	}
	if c.Meter.ServiceVersion == "" {
		c.Meter.ServiceVersion = md.ServiceVersion
	}
	if c.Meter.Endpoint == "" {
		c.Meter.Endpoint = md.Endpoint
		c.Meter.Insecure = md.Insecure
	}
	if c.Meter.Interval == 0 {
		c.Meter.Interval = md.Interval
	}
}

// ShutdownFunc flushes and stops whatever Setup started.
type ShutdownFunc func(context.Context) error

// Setup starts the enabled providers and returns a combined shutdown.
// With nothing enabled the global no-op providers stay in place.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.TracingEnabled {
		tp, err := InitTracer(ctx, cfg.Tracer)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}
	if cfg.MetricsEnabled {
		mp, err := InitMeter(ctx, cfg.Meter)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}
	return shutdown, nil
}
