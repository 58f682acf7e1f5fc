package coordinator

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/errors"
	"github.com/kbukum/nexus/testutil"
)

func TestChain_Empty(t *testing.T) {
	_, err := newTestCoordinator().Chain(context.Background(), "x", nil)
	if !stderrors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain, got %v", err)
	}
	if _, err := newTestCoordinator().ChainRegistered(context.Background(), "x"); !stderrors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain for empty registry, got %v", err)
	}
}

func TestChain_InvalidRecord(t *testing.T) {
	records := adapter.NewRecordAdapter("JSON_PIPELINE_001", adapter.RecordOptions{})
	r, err := newTestCoordinator().Chain(context.Background(), "not-a-record", []adapter.Adapter{records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != adapter.StatusFailure || !errors.IsValidation(r.Cause) {
		t.Fatalf("expected validation failure, got %s %v", r.Status, r.Cause)
	}
	if !errors.HasCode(r.Halt, errors.ErrCodeChainHalt) {
		t.Errorf("expected CHAIN_HALT, got %v", r.Halt)
	}
}

func TestChain_FailFast(t *testing.T) {
	first := testutil.NewFailingAdapter("A1", adapter.KindRecord, stderrors.New("broken"))
	second := testutil.NewMockAdapter("A2", adapter.KindStream)

	r, err := newTestCoordinator().Chain(context.Background(), "x", []adapter.Adapter{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ProducerID != "A1" || r.Succeeded() {
		t.Errorf("expected A1 failure, got %s %s", r.ProducerID, r.Status)
	}
	if second.Calls() != 0 {
		t.Errorf("A2 must not run after A1 fails, got %d calls", second.Calls())
	}
	appErr, _ := errors.AsAppError(r.Halt)
	if appErr == nil || appErr.Details["step"] != 0 || appErr.Details["producer_id"] != "A1" {
		t.Errorf("unexpected halt %v", r.Halt)
	}
}

func TestChain_FeedsSummaryForward(t *testing.T) {
	stream := adapter.NewStreamAdapter("STREAM_PIPELINE_003", adapter.DefaultStreamOptions())
	records := adapter.NewRecordAdapter("JSON_PIPELINE_001", adapter.RecordOptions{})
	tail := testutil.NewMockAdapter("tail", adapter.KindStream)

	ctx := adapter.ContextWithRunID(context.Background(), "run-42")
	r, err := newTestCoordinator().Chain(ctx, "Real-time sensor stream", []adapter.Adapter{stream, records, tail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Succeeded() || r.ProducerID != "tail" {
		t.Fatalf("expected tail success, got %s %v", r.ProducerID, r.Cause)
	}
	if r.RunID != "run-42" {
		t.Errorf("expected shared run id, got %q", r.RunID)
	}

	fed := tail.Payloads()
	if len(fed) != 1 {
		t.Fatalf("expected tail to run once, got %d", len(fed))
	}
	obs, ok := fed[0].(adapter.Observation)
	if !ok {
		t.Fatalf("expected Observation fed to tail, got %T", fed[0])
	}
	if obs.String() != "Processed temperature reading: 22.1°C (Normal range)" {
		t.Errorf("unexpected intermediate summary %q", obs.String())
	}
}

func TestChain_HaltsMidway(t *testing.T) {
	records := adapter.NewRecordAdapter("JSON_PIPELINE_001", adapter.RecordOptions{})
	lines := adapter.NewDelimitedAdapter("CSV_PIPELINE_002", adapter.DelimitedOptions{})
	after := testutil.NewMockAdapter("after", adapter.KindStream)

	r, _ := newTestCoordinator().Chain(context.Background(), adapter.Record{"value": 1},
		[]adapter.Adapter{records, lines, after})

	if r.ProducerID != "CSV_PIPELINE_002" || !errors.IsValidation(r.Cause) {
		t.Fatalf("expected delimited validation failure, got %s %v", r.ProducerID, r.Cause)
	}
	appErr, _ := errors.AsAppError(r.Halt)
	if appErr == nil || appErr.Details["step"] != 1 {
		t.Errorf("expected halt at step 1, got %v", r.Halt)
	}
	if !stderrors.Is(r.Halt, r.Cause) {
		t.Error("halt should wrap the step's cause")
	}
	if after.Calls() != 0 {
		t.Error("adapters after the halt must not run")
	}
}

func TestChain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := testutil.NewMockAdapter("A1", adapter.KindStream)

	r, err := newTestCoordinator().Chain(ctx, "x", []adapter.Adapter{a})
	if err != nil {
		t.Fatalf("cancellation is reported, not returned: %v", err)
	}
	if !errors.HasCode(r.Cause, errors.ErrCodeCancelled) {
		t.Errorf("expected CANCELLED, got %v", r.Cause)
	}
	if a.Calls() != 0 {
		t.Error("adapter must not run on a cancelled context")
	}
}

func TestChainRegistered(t *testing.T) {
	c := newTestCoordinator()
	first := testutil.NewMockAdapter("first", adapter.KindStream)
	second := testutil.NewMockAdapter("second", adapter.KindStream)
	c.Register(first)
	c.Register(second)

	r, err := c.ChainRegistered(context.Background(), "seed")
	if err != nil || r.ProducerID != "second" {
		t.Fatalf("unexpected result %s %v", r.ProducerID, err)
	}
	if got := second.Payloads()[0].(testutil.TextSummary).Text; got != "first" {
		t.Errorf("second should receive first's summary, got %q", got)
	}
}
