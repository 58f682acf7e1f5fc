// Package coordinator owns a set of adapters and composes them.
//
// A Coordinator supports four ways of running payloads:
//
//   - Broadcast sends one payload to every registered adapter in parallel
//     and returns the reports in registration order.
//   - Chain feeds each adapter's summary to the next adapter and halts at
//     the first failure.
//   - Recover runs a fallback adapter when a primary adapter fails.
//   - ProcessBatch runs many payloads through one adapter in parallel.
//
// Failures are returned as adapter.Report values. The only Go error is
// ErrEmptyChain.
//
// Register adapters during setup, then process:
//
//	c := coordinator.New(coordinator.WithMaxParallel(4))
//	c.Register(records)
//	c.Register(lines)
//	reports := c.Broadcast(ctx, payload)
//
// Tally keeps per-producer counts over any reports the caller feeds it.
package coordinator
