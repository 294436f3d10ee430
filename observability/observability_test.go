package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/faultline/errors"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func newReader(t *testing.T) (*sdkmetric.ManualReader, *Metrics) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	return reader, m
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestFaultAttributes(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.Error
		key    string
		want   string
		absent string
	}{
		{"io", errors.FromIO(errors.IO(errors.IOConnectionReset)), AttrFaultDetail, "ConnectionReset", AttrFaultMessage},
		{"http", errors.FromHTTP(errors.HTTP(errors.HTTPTooManyRedirections)), AttrFaultDetail, "TooManyRedirections", ""},
		{"hex", errors.InvalidHexCharacter("g", 1), AttrFaultDetail, "g", ""},
		{"json-rpc", errors.JSONRPC(-32602, "invalid params"), AttrFaultMessage, "invalid params", AttrFaultDetail},
		{"message", errors.Serialization("eof"), AttrFaultMessage, "eof", AttrFaultDetail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := FaultAttributes(tt.err)
			kind, ok := attrValue(attrs, AttrFaultKind)
			if !ok || kind.AsString() != tt.err.Kind().String() {
				t.Errorf("expected kind %s, got %v", tt.err.Kind(), kind)
			}
			got, ok := attrValue(attrs, tt.key)
			if !ok || got.AsString() != tt.want {
				t.Errorf("expected %s=%s, got %v", tt.key, tt.want, got.Emit())
			}
			if tt.absent != "" {
				if _, ok := attrValue(attrs, tt.absent); ok {
					t.Errorf("expected no %s attribute", tt.absent)
				}
			}
		})
	}

	index, _ := attrValue(FaultAttributes(errors.InvalidHexCharacter("g", 7)), AttrFaultIndex)
	if index.AsInt64() != 7 {
		t.Errorf("expected index 7, got %d", index.AsInt64())
	}
}

func TestRecordFault(t *testing.T) {
	sr := recordSpans(t)

	_, span := StartSpan(context.Background(), "fetch")
	RecordFault(span, errors.FromIO(errors.IO(errors.IOTimedOut)))
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Status().Code != codes.Error || s.Status().Description != "i/o error: TimedOut" {
		t.Errorf("unexpected status %+v", s.Status())
	}
	if v, ok := attrValue(s.Attributes(), AttrFaultKind); !ok || v.AsString() != "IoErr" {
		t.Errorf("expected fault.kind IoErr, got %v", s.Attributes())
	}
	if len(s.Events()) != 1 || s.Events()[0].Name != "exception" {
		t.Errorf("expected one exception event, got %v", s.Events())
	}
}

func TestRecordFault_IgnoresNil(t *testing.T) {
	sr := recordSpans(t)

	_, span := StartSpan(context.Background(), "ok")
	RecordFault(span, nil)
	span.End()
	RecordFault(nil, errors.New(errors.KindOddLength))

	if s := sr.Ended()[0]; s.Status().Code == codes.Error {
		t.Error("expected the span not to be failed")
	}
}

func TestMetrics_RecordFault(t *testing.T) {
	reader, m := newReader(t)
	ctx := context.Background()

	m.RecordFault(ctx, errors.New(errors.KindOddLength), "hexerr")
	m.RecordFault(ctx, errors.New(errors.KindOddLength), "hexerr")
	m.RecordFault(ctx, nil, "hexerr")

	sum, ok := collect(t, reader, "faults_total").(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected an int64 sum")
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
	}
	dp := sum.DataPoints[0]
	if dp.Value != 2 {
		t.Errorf("expected 2 faults, got %d", dp.Value)
	}
	if v, _ := dp.Attributes.Value(AttrFaultKind); v.AsString() != "OddLength" {
		t.Errorf("expected kind OddLength, got %v", v.Emit())
	}
	if v, _ := dp.Attributes.Value(AttrComponent); v.AsString() != "hexerr" {
		t.Errorf("expected component hexerr, got %v", v.Emit())
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordFault(context.Background(), errors.New(errors.KindOddLength), "x")
	m.RecordOperation(context.Background(), "svc", "op", StatusOK, time.Millisecond)
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil || m == nil {
		t.Fatalf("expected metrics, got %v", err)
	}
	m.RecordOperation(context.Background(), "svc", "probe", StatusOK, 50*time.Millisecond)
}

func TestOperationContext(t *testing.T) {
	sr := recordSpans(t)
	reader, m := newReader(t)

	oc := NewOperationContext("faultline", "probe", m)
	ctx, span := oc.StartSpan(context.Background())
	if OperationContextFromContext(ctx) != oc {
		t.Error("expected the operation context in the span context")
	}
	oc.End(ctx, span, errors.Failure(errors.FromHTTP(errors.HTTP(errors.HTTPAddressNotFound))))

	s := sr.Ended()[0]
	if s.Name() != "probe" || s.Status().Code != codes.Error {
		t.Errorf("unexpected span %s %+v", s.Name(), s.Status())
	}
	if v, _ := attrValue(s.Attributes(), AttrStatus); v.AsString() != StatusFault {
		t.Errorf("expected status fault, got %v", v.Emit())
	}

	ops, ok := collect(t, reader, "operation.total").(metricdata.Sum[int64])
	if !ok || len(ops.DataPoints) != 1 || ops.DataPoints[0].Value != 1 {
		t.Errorf("expected one recorded operation, got %+v", ops)
	}
}

func TestOperationContext_Success(t *testing.T) {
	sr := recordSpans(t)

	oc := NewOperationContext("faultline", "decode", nil)
	ctx, span := oc.StartSpan(context.Background())
	oc.End(ctx, span, errors.Success())

	if v, _ := attrValue(sr.Ended()[0].Attributes(), AttrStatus); v.AsString() != StatusOK {
		t.Errorf("expected status ok, got %v", v.Emit())
	}
}

func TestOperationContextFromContext_NotSet(t *testing.T) {
	if OperationContextFromContext(context.Background()) != nil {
		t.Error("expected nil when operation context not set")
	}
}

func TestOperationContext_Duration(t *testing.T) {
	oc := NewOperationContext("faultline", "probe", nil)
	oc.StartTime = time.Now().Add(-50 * time.Millisecond)

	if d := oc.Duration(); d < 45*time.Millisecond || d > 200*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", d)
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
	if SpanFromContext(context.Background()) == nil {
		t.Fatal("expected non-nil span (noop)")
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("test")
	for _, rate := range []float64{1.0, 0.0, 0.5} {
		cfg.SampleRate = rate
		tp, err := InitTracer(context.Background(), cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = tp.Shutdown(context.Background())
	}
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test")
	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = mp.Shutdown(context.Background())
}
