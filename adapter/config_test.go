package adapter

import (
	"context"
	"testing"

	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/stage"
)

func TestFromConfig(t *testing.T) {
	reg := stage.NewRegistry()

	tests := []struct {
		name     string
		cfg      Config
		wantKind Kind
		wantLen  int
		wantErr  bool
	}{
		{
			name:     "record with default stages",
			cfg:      Config{ID: "JSON_PIPELINE_001", Kind: KindRecord},
			wantKind: KindRecord,
			wantLen:  3,
		},
		{
			name:     "delimited with explicit stages",
			cfg:      Config{ID: "CSV_PIPELINE_002", Kind: KindDelimited, Stages: []string{"input"}},
			wantKind: KindDelimited,
			wantLen:  1,
		},
		{
			name:     "stream with empty stage list",
			cfg:      Config{ID: "STREAM_PIPELINE_003", Kind: KindStream, Stages: []string{}},
			wantKind: KindStream,
			wantLen:  0,
		},
		{
			name:    "missing id",
			cfg:     Config{Kind: KindRecord},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			cfg:     Config{ID: "x", Kind: "xml"},
			wantErr: true,
		},
		{
			name:    "unknown stage",
			cfg:     Config{ID: "x", Kind: KindStream, Stages: []string{"decrypt"}},
			wantErr: true,
		},
		{
			name: "inverted range",
			cfg: Config{ID: "x", Kind: KindRecord, Record: RecordOptions{
				Normal: &Range{Min: 30, Max: 10},
			}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := FromConfig(tc.cfg, reg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.HasCode(err, errors.ErrCodeConfig) {
					t.Errorf("expected CONFIG_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.ID() != tc.cfg.ID || a.Kind() != tc.wantKind {
				t.Errorf("got %s/%s", a.ID(), a.Kind())
			}
			type chained interface{ Chain() *stage.Chain }
			if got := a.(chained).Chain().Len(); got != tc.wantLen {
				t.Errorf("expected %d stages, got %d", tc.wantLen, got)
			}
		})
	}
}

func TestFromConfig_StreamOptions(t *testing.T) {
	cfg := Config{
		ID:     "s",
		Kind:   KindStream,
		Stream: &StreamOptions{Readings: 12, Average: 19.5, Unit: "K"},
	}
	a, err := FromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := a.Process(context.Background(), "feed-7")
	if r.Summary.String() != "Stream summary: 12 readings, avg: 19.5K" {
		t.Errorf("unexpected summary %q", r.Summary.String())
	}
}

func TestFromConfig_ExtraStagesAppend(t *testing.T) {
	rec := &recorder{}
	a, err := FromConfig(Config{ID: "r", Kind: KindRecord}, nil, WithStages(rec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Process(context.Background(), Record{"value": 1})
	if rec.Calls() != 1 {
		t.Errorf("expected appended stage to run once, got %d", rec.Calls())
	}
}

func TestBuildAll(t *testing.T) {
	cfgs := []Config{
		{ID: "a", Kind: KindRecord},
		{ID: "b", Kind: KindDelimited},
	}
	adapters, err := BuildAll(cfgs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adapters) != 2 || adapters[1].ID() != "b" {
		t.Errorf("unexpected adapters %v", adapters)
	}

	cfgs = append(cfgs, Config{ID: "c"})
	if _, err := BuildAll(cfgs, nil); err == nil {
		t.Error("expected error for invalid entry")
	}
}
