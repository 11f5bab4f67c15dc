package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRunID     = "run_id"
	FieldStream    = "stream"
	FieldSource    = "source"
	FieldPath      = "path"
	FieldOp        = "op"
	FieldBatchID   = "batch_id"
	FieldPulled    = "pulled"
	FieldCount     = "count"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("listed", logger.Fields(logger.FieldPath, dir, logger.FieldCount, n))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a stream that failed.
func ErrorFields(stream string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldStream: stream,
		FieldError:  err.Error(),
	}
}

// RunFields summarizes a finished terminal operation.
func RunFields(stream string, pulled int64, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldStream:   stream,
		FieldPulled:   pulled,
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
