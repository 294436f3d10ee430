package logger

import (
	"time"

	"github.com/kbukum/faultline/errors"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldFaultKind = "fault_kind"
	FieldFault     = "fault"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("op", "decode", "bytes", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// FaultFields renders a unified error as structured fields: the kind tag,
// the rendered message, and the structured payload under "fault". A nil
// error yields an empty map.
func FaultFields(err *errors.Error) map[string]interface{} {
	if err == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		FieldFaultKind: err.Kind().String(),
		FieldError:     err.Error(),
		FieldFault:     err,
	}
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	fields := map[string]interface{}{FieldOperation: op}
	if ferr, ok := errors.As(err); ok {
		for k, v := range FaultFields(ferr) {
			fields[k] = v
		}
		return fields
	}
	fields[FieldError] = err.Error()
	return fields
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
