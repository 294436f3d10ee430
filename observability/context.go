package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/faultline/errors"
)

// Operation status values.
const (
	StatusOK    = "ok"
	StatusFault = "fault"
)

// Span attribute keys.
const (
	AttrServiceName   = "service.name"
	AttrOperationName = "operation.name"
	AttrDurationMs    = "duration_ms"
	AttrStatus        = "status"
)

// OperationContext tracks one traced operation whose outcome is a unified
// error.
type OperationContext struct {
	ServiceName   string
	OperationName string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, operationName string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// operationContextKey is the context key for OperationContext.
type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// StartSpan starts the operation's span and stores oc in the returned
// context.
func (oc *OperationContext) StartSpan(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(WithOperationContext(ctx, oc), oc.OperationName)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
	)
	return ctx, span
}

// End ends the span and records the outcome: fault attributes and the
// fault counter on failure, the operation counter and duration always.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, outcome errors.Outcome) {
	duration := time.Since(oc.StartTime)

	status := StatusOK
	if err, failed := outcome.Failed(); failed {
		status = StatusFault
		RecordFault(span, err)
		oc.Metrics.RecordFault(ctx, err, oc.ServiceName)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	oc.Metrics.RecordOperation(ctx, oc.ServiceName, oc.OperationName, status, duration)
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
