package adapter

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/nexus/stage"
)

// recorder is a stage that counts its invocations.
type recorder struct {
	calls int32
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Process(_ context.Context, in any) (any, error) {
	atomic.AddInt32(&r.calls, 1)
	return in, nil
}

func (r *recorder) Calls() int { return int(atomic.LoadInt32(&r.calls)) }

var _ stage.Stage = (*recorder)(nil)

func allAdapters(stages ...stage.Stage) []Adapter {
	return []Adapter{
		NewRecordAdapter("JSON_PIPELINE_001", RecordOptions{}, WithStages(stages...)),
		NewDelimitedAdapter("CSV_PIPELINE_002", DelimitedOptions{}, WithStages(stages...)),
		NewStreamAdapter("STREAM_PIPELINE_003", DefaultStreamOptions(), WithStages(stages...)),
	}
}
