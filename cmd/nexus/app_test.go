package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/bootstrap"
	"github.com/kbukum/nexus/logger"
	"github.com/kbukum/nexus/testutil"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    any
		wantErr bool
	}{
		{"text", "action,login,action", "action,login,action", false},
		{"record", `{"value": 23.5, "unit": "°C"}`, adapter.Record{"value": 23.5, "unit": "°C"}, false},
		{"broken json", `{"value":`, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePayload(tc.arg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parsePayload() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			switch want := tc.want.(type) {
			case adapter.Record:
				rec, ok := got.(adapter.Record)
				if !ok || rec["value"] != want["value"] || rec["unit"] != want["unit"] {
					t.Errorf("got %v, want %v", got, want)
				}
			default:
				if got != want {
					t.Errorf("got %v, want %v", got, want)
				}
			}
		})
	}
}

func testRuntime(t *testing.T) *runtime {
	t.Helper()
	cfg, err := loadConfig("config.yml", "")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	rt, err := newRuntime(context.Background(), cfg, bootstrap.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("newRuntime failed: %v", err)
	}
	return rt
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("config.yml", "")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if len(cfg.Adapters) != 3 {
		t.Fatalf("expected 3 adapters, got %d", len(cfg.Adapters))
	}
	if cfg.Adapters[0].Record.Normal == nil || cfg.Adapters[0].Record.Normal.Max != 40 {
		t.Errorf("expected record range to load, got %+v", cfg.Adapters[0].Record)
	}
	if cfg.Coordinator.MaxParallel != 4 {
		t.Errorf("expected max_parallel 4, got %d", cfg.Coordinator.MaxParallel)
	}
}

func TestNewRuntime(t *testing.T) {
	rt := testRuntime(t)
	ids := []string{"JSON_PIPELINE_001", "CSV_PIPELINE_002", "STREAM_PIPELINE_003"}

	got := rt.coord.Adapters()
	if len(got) != len(ids) {
		t.Fatalf("expected %d adapters, got %d", len(ids), len(got))
	}
	for i, id := range ids {
		if got[i].ID() != id {
			t.Errorf("adapter %d: got %s, want %s", i, got[i].ID(), id)
		}
	}

	if _, err := rt.adapters([]string{"CSV_PIPELINE_002", "missing"}); err == nil {
		t.Error("expected unknown adapter error")
	}
}

func TestRuntime_Scenarios(t *testing.T) {
	rt := testRuntime(t)
	ctx := context.Background()
	records, _ := rt.adapter("JSON_PIPELINE_001")
	lines, _ := rt.adapter("CSV_PIPELINE_002")

	r := records.Process(ctx, adapter.Record{"value": 23.5, "unit": "°C"})
	if r.Summary == nil || r.Summary.String() != "Processed temperature reading: 23.5°C (Normal range)" {
		t.Errorf("unexpected record report %+v", r)
	}

	r = lines.Process(ctx, "action,login,action")
	count, ok := r.Summary.(adapter.TokenCount)
	if !ok || count.Tokens != 3 || count.Markers != 2 {
		t.Errorf("unexpected delimited report %+v", r)
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf, format: outputJSON}
	err := p.report(adapter.Report{ProducerID: "x", Status: adapter.StatusSuccess, Summary: adapter.TokenCount{Tokens: 2, Marker: "action"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["producer_id"] != "x" || decoded["status"] != "success" {
		t.Errorf("unexpected fields %v", decoded)
	}
}

func TestDemoCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", "config.yml", "demo"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"[JSON_PIPELINE_001] Processed temperature reading: 23.5°C (Normal range)",
		"[CSV_PIPELINE_002] Activity logged: 1 \"action\" tokens of 3 processed",
		"[STREAM_PIPELINE_003] Stream summary: 5 readings, avg: 22.1°C",
		"[JSON_PIPELINE_001] Processed temperature reading: 22.1°C (Normal range)",
		"(recovered from:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestDemoChain_PicksFirstStreamThenRecord(t *testing.T) {
	adapters := []adapter.Adapter{
		testutil.NewMockAdapter("s1", adapter.KindStream),
		testutil.NewMockAdapter("d1", adapter.KindDelimited),
		testutil.NewMockAdapter("s2", adapter.KindStream),
		testutil.NewMockAdapter("r1", adapter.KindRecord),
		testutil.NewMockAdapter("r2", adapter.KindRecord),
	}
	got := demoChain(adapters)
	if len(got) != 2 || got[0].ID() != "s1" || got[1].ID() != "r1" {
		t.Fatalf("expected [s1 r1], got %v", got)
	}
	got[1] = nil
	for i, want := range []string{"s1", "d1", "s2", "r1", "r2"} {
		if adapters[i] == nil || adapters[i].ID() != want {
			t.Errorf("input changed at %d: want %s", i, want)
		}
	}
	if got := demoChain(adapters[:2]); len(got) != 2 || got[1].ID() != "d1" {
		t.Errorf("expected all adapters back without a record adapter, got %v", got)
	}
}

func TestRecoverCommand_RequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", "config.yml", "recover", "x"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected missing flag error")
	}
}
