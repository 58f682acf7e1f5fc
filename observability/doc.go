// Package observability provides OpenTelemetry tracing and metrics for
// stage, adapter and coordinator execution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("nexus"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "coordinator.broadcast")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("nexus"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("nexus"))
//	metrics.RecordReport(ctx, "CSV_PIPELINE_002", "delimited", "success", duration)
package observability
