// Package observability traces and measures stream runs with OpenTelemetry.
//
// Tracing and metrics providers export over OTLP HTTP:
//
//	tp, err := observability.InitTracer(ctx, &tcfg)
//	defer tp.Shutdown(ctx)
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
// Instrumenting a stream counts the elements it produces and the errors
// that end it, under the stream.pulls and stream.errors instruments:
//
//	metrics, err := observability.NewMetrics(observability.Meter("seqdemo"))
//	files := observability.InstrumentStream(source.ListDir(fs, "."), "files", metrics)
//
// Run wraps a terminal operation in a span, records stream.run.duration and
// tags the context with a run ID that appears in every log line written
// through logger.WithContext:
//
//	n, err := observability.Run(ctx, "files", metrics, files.Count)
package observability
