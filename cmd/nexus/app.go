package main

import (
	"context"
	"fmt"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/bootstrap"
	"github.com/kbukum/nexus/config"
	"github.com/kbukum/nexus/coordinator"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/observability"
	"github.com/kbukum/nexus/stage"
	"github.com/kbukum/nexus/version"
)

const serviceName = "nexus"

// AppConfig is the nexus binary configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Coordinator          coordinator.Config   `yaml:"coordinator" mapstructure:"coordinator"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
	Adapters             []adapter.Config     `yaml:"adapters" mapstructure:"adapters"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Coordinator.ApplyDefaults()
	if c.Observability.Tracer.Environment == "" {
		c.Observability.Tracer.Environment = c.Environment
	}
	if c.Observability.Meter.Environment == "" {
		c.Observability.Meter.Environment = c.Environment
	}
	if c.Observability.Tracer.ServiceVersion == "" {
		c.Observability.Tracer.ServiceVersion = c.Version
	}
	if c.Observability.Meter.ServiceVersion == "" {
		c.Observability.Meter.ServiceVersion = c.Version
	}
	c.Observability.ApplyDefaults(c.Name)
}

// Validate checks the configuration.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Coordinator.Validate(); err != nil {
		return err
	}
	if len(c.Adapters) == 0 {
		return fmt.Errorf("config.adapters: at least one adapter is required")
	}
	return nil
}

// runtime is everything a command needs once config is loaded.
type runtime struct {
	app   *bootstrap.App[*AppConfig]
	coord *coordinator.Coordinator
	tally *coordinator.Tally
}

// loadConfig reads config.yml, .env and NEXUS_* variables into an AppConfig.
func loadConfig(configFile, envFile string) (*AppConfig, error) {
	cfg := &AppConfig{}
	opts := []config.LoaderOption{
		config.WithDefaults(map[string]any{
			"name":                 serviceName,
			"coordinator.fallback": string(coordinator.AnyFailure),
		}),
	}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRuntime builds the app, telemetry hooks, stage registry and coordinator.
func newRuntime(ctx context.Context, cfg *AppConfig, opts ...bootstrap.Option) (*runtime, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	shutdown, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("observability setup: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdown))

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, err
	}

	logger.RegisterDefaults(app.Logger, "adapter", "coordinator", "stage")

	adapters, err := adapter.BuildAll(cfg.Adapters, stage.NewRegistry(),
		adapter.WithMetrics(metrics),
		adapter.WithInstrumentedStages(),
	)
	if err != nil {
		return nil, err
	}

	copts := append(cfg.Coordinator.Options(), coordinator.WithMetrics(metrics))
	coord := coordinator.New(copts...)
	for _, a := range adapters {
		coord.Register(a)
	}

	return &runtime{app: app, coord: coord, tally: coordinator.NewTally()}, nil
}

// adapter resolves a registered adapter id.
func (r *runtime) adapter(id string) (adapter.Adapter, error) {
	a, ok := r.coord.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown adapter %q", id)
	}
	return a, nil
}

// adapters resolves ids in order; no ids means every registered adapter.
func (r *runtime) adapters(ids []string) ([]adapter.Adapter, error) {
	if len(ids) == 0 {
		return r.coord.Adapters(), nil
	}
	out := make([]adapter.Adapter, 0, len(ids))
	for _, id := range ids {
		a, err := r.adapter(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
