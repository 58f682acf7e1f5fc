// Package adapter binds a stage chain to one payload shape.
//
// Every Adapter validates its payload before touching the chain, runs the
// chain, and interprets the payload into a variant-specific Summary carried
// by a Report. Failures never escape Process: they come back as a Report
// with Status failure and an *errors.AppError Cause.
//
// Three variants are provided:
//
//   - RecordAdapter    key/value records  -> Observation
//   - DelimitedAdapter delimited text     -> TokenCount
//   - StreamAdapter    raw stream id      -> StreamSummary
//
// Adapters keep no state between calls and are safe for concurrent use.
package adapter
