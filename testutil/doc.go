// Package testutil provides test doubles for stages and adapters.
//
// MockStage and MockAdapter record how often they are invoked so tests can
// assert that validation failures and halted chains never reach them.
//
// Example:
//
//	second := testutil.NewMockAdapter("A2", adapter.KindRecord)
//	c.Chain(ctx, "not-a-record", []adapter.Adapter{first, second})
//	if second.Calls() != 0 {
//	    t.Fatal("halted chain reached A2")
//	}
package testutil
