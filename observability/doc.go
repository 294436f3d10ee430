// Package observability records unified errors on OpenTelemetry spans and
// metrics.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("faultline"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "probe")
//	defer span.End()
//	observability.RecordFault(span, ferr)
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("faultline"))
//	metrics.RecordFault(ctx, ferr, "httpclient")
//
// Operations combine both:
//
//	oc := observability.NewOperationContext("faultline", "probe", metrics)
//	ctx, span := oc.StartSpan(ctx)
//	oc.End(ctx, span, outcome)
package observability
