// Package stage provides the single-purpose transform unit and the ordered
// chain that folds a value through a sequence of them.
//
// A Chain runs its stages left to right, each stage's output becoming the
// next stage's input. An empty chain returns its input unchanged. The first
// failing stage aborts the run with a STAGE_FAILURE error carrying the
// stage's index; stages are never retried by the chain.
//
//	chain := stage.NewChain(stage.Passthrough("input"), normalize, stage.Passthrough("output"))
//	out, err := chain.Run(ctx, payload)
package stage
