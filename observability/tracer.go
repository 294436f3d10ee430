package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/logger"
)

const defaultTracerName = "github.com/kbukum/faultline"

// TracerConfig configures the OpenTelemetry tracer.
type TracerConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64
}

// DefaultTracerConfig returns sensible defaults for development.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
	}
}

// InitTracer initializes the OpenTelemetry tracer provider with an OTLP
// HTTP exporter. The provider should be shut down on application exit.
func InitTracer(ctx context.Context, config TracerConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracer initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"sample_rate", config.SampleRate,
	))

	return tp, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("deployment.environment", environment),
		),
	)
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a new span using the default tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(defaultTracerName).Start(ctx, name, opts...)
}

// SpanFromContext returns the span from context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// Fault attribute keys.
const (
	AttrFaultKind    = "fault.kind"
	AttrFaultDetail  = "fault.detail"
	AttrFaultMessage = "fault.message"
	AttrFaultIndex   = "fault.index"
	AttrFaultCode    = "fault.code"
	AttrComponent    = "component"
)

// FaultAttributes describes err as span or metric attributes: the kind tag
// always, then the nested category or payload when the variant has one.
func FaultAttributes(err *errors.Error) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrFaultKind, err.Kind().String())}
	if io, ok := err.IO(); ok {
		return append(attrs, attribute.String(AttrFaultDetail, io.String()))
	}
	if h, ok := err.HTTP(); ok {
		return append(attrs, attribute.String(AttrFaultDetail, h.String()))
	}
	if t, ok := err.TLS(); ok {
		return append(attrs, attribute.String(AttrFaultDetail, t.String()))
	}
	if s, ok := err.Store(); ok {
		return append(attrs, attribute.String(AttrFaultDetail, s.String()))
	}
	if char, index, ok := err.HexChar(); ok {
		return append(attrs,
			attribute.String(AttrFaultDetail, char),
			attribute.Int64(AttrFaultIndex, int64(index)),
		)
	}
	if code, msg, ok := err.JSONRPC(); ok {
		return append(attrs,
			attribute.Int(AttrFaultCode, int(code)),
			attribute.String(AttrFaultMessage, msg),
		)
	}
	if msg := err.Message(); msg != "" {
		attrs = append(attrs, attribute.String(AttrFaultMessage, msg))
	}
	return attrs
}

// RecordFault marks span as failed with err and its fault attributes.
// A nil error or a non-recording span is ignored.
func RecordFault(span trace.Span, err *errors.Error) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	attrs := FaultAttributes(err)
	span.SetAttributes(attrs...)
	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())
}
