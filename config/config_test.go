package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Coordinator   struct {
		MaxParallel int    `mapstructure:"max_parallel"`
		Fallback    string `mapstructure:"fallback"`
	} `mapstructure:"coordinator"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, false, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: nexus
environment: staging
coordinator:
  max_parallel: 4
  fallback: validation
`)

	var cfg testConfig
	if err := LoadConfig("nexus-yaml", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "nexus" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Coordinator.MaxParallel != 4 {
		t.Errorf("expected max_parallel 4, got %d", cfg.Coordinator.MaxParallel)
	}
	if cfg.Coordinator.Fallback != "validation" {
		t.Errorf("expected fallback 'validation', got %q", cfg.Coordinator.Fallback)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: nexus\ncoordinator:\n  max_parallel: 2\n")
	t.Setenv("NEXUSENV_COORDINATOR_MAX_PARALLEL", "8")

	var cfg testConfig
	if err := LoadConfig("nexusenv", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Coordinator.MaxParallel != 8 {
		t.Errorf("expected env override 8, got %d", cfg.Coordinator.MaxParallel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nexus-defaults", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithDefaults(map[string]any{"coordinator.fallback": "any", "name": "nexus"}),
	)
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
	if cfg.Coordinator.Fallback != "any" || cfg.Name != "nexus" {
		t.Errorf("expected defaults to apply, got %+v", cfg)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unterminated\n")

	var cfg testConfig
	if err := LoadConfig("nexus", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/nexus/config.yml": true,
		"./config.yml":           true,
		"./.env":                 true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("nexus", LoaderConfig{})
	if files.ConfigFile != "./cmd/nexus/config.yml" {
		t.Errorf("expected cmd config to win, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected root .env, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("nexus", LoaderConfig{ConfigFile: "/a.yml", EnvFile: "/b.env"})
	if files.ConfigFile != "/a.yml" || files.EnvFile != "/b.env" {
		t.Errorf("explicit paths should be kept, got %+v", files)
	}
}

func TestLoadConfigLoadsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"/x/.env": true}}
	var cfg testConfig
	if err := LoadConfig("nexus", &cfg, WithFileSystem(fs), WithEnvFile("/x/.env")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != "/x/.env" {
		t.Errorf("expected .env to be loaded once, got %v", fs.loaded)
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey("NEXUS", "coordinator.max_parallel"); got != "NEXUS_COORDINATOR_MAX_PARALLEL" {
		t.Errorf("unexpected env key %q", got)
	}
	if got := EnvKey("", "name"); got != "NAME" {
		t.Errorf("unexpected env key %q", got)
	}
	if got := envPrefix("nexus-demo"); got != "NEXUS_DEMO" {
		t.Errorf("unexpected prefix %q", got)
	}
}
