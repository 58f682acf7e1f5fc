package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/nexus/config"
	"github.com/kbukum/nexus/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     "1.0.0",
			Environment: "development",
		},
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %s %s", app.Name, app.Version)
	}
	if app.Cfg.Logging.Level != "debug" {
		t.Errorf("expected defaults applied, got level %q", app.Cfg.Logging.Level)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	if _, err := NewApp(newTestConfig(""), WithLogger(logger.Nop())); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestNewApp_InitializesLogger(t *testing.T) {
	prev := logger.GetGlobalLogger()
	defer logger.SetGlobalLogger(prev)

	app, err := NewApp(newTestConfig("svc"))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger == nil {
		t.Fatal("expected logger")
	}
}

func TestRunTask_HookOrder(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc"), WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"start", "task", "stop"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestRunTask_Errors(t *testing.T) {
	taskErr := errors.New("task failed")
	stopErr := errors.New("flush failed")

	tests := []struct {
		name    string
		task    error
		stop    error
		wantErr error
	}{
		{"clean", nil, nil, nil},
		{"task error", taskErr, nil, taskErr},
		{"stop error", nil, stopErr, stopErr},
		{"task error wins", taskErr, stopErr, taskErr},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := NewApp(newTestConfig("svc"), WithLogger(logger.Nop()))
			stopped := false
			app.OnStop(func(context.Context) error {
				stopped = true
				return tc.stop
			})

			err := app.RunTask(context.Background(), func(context.Context) error { return tc.task })
			if !errors.Is(err, tc.wantErr) || (tc.wantErr == nil && err != nil) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
			if !stopped {
				t.Error("OnStop must run after the task")
			}
		})
	}
}

func TestRunTask_StartHookFailure(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc"), WithLogger(logger.Nop()))
	ran := false
	app.OnStart(func(context.Context) error { return errors.New("no telemetry") })

	err := app.RunTask(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err == nil || ran {
		t.Errorf("expected start failure to skip the task, err=%v ran=%v", err, ran)
	}
}

func TestRunTask_ContextCancellation(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc"), WithLogger(logger.Nop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected task to see cancellation, got %v", err)
	}
}
