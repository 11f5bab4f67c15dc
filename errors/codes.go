package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Evaluation errors
const (
	// ErrCodeSourceFailure indicates a source producer could not supply the next element.
	ErrCodeSourceFailure ErrorCode = "SOURCE_FAILURE"
	// ErrCodeKeyCollision indicates a keyed collector saw the same key twice.
	ErrCodeKeyCollision ErrorCode = "KEY_COLLISION"
	// ErrCodeTimeout indicates a bounded wait expired.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidArgument indicates an operator was given an unusable argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeSourceFailure: true,
	ErrCodeTimeout:       true,
	ErrCodeInternal:      false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
