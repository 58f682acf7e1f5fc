package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Payload errors
const (
	// ErrCodeValidation indicates a payload does not satisfy an adapter's shape contract.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeMissingField indicates a required record key is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a value has an unexpected format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Execution errors
const (
	// ErrCodeStageFailure indicates a stage inside a chain failed.
	ErrCodeStageFailure ErrorCode = "STAGE_FAILURE"
	// ErrCodeChainHalt indicates a coordinator chain stopped at a failing adapter.
	ErrCodeChainHalt ErrorCode = "CHAIN_HALT"
	// ErrCodeCancelled indicates the caller's context ended before processing finished.
	ErrCodeCancelled ErrorCode = "CANCELLED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeConfig indicates invalid or unreadable configuration.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeStageFailure: true,
	ErrCodeCancelled:    true,
	ErrCodeInternal:     false,
	ErrCodeValidation:   false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// A stage failure may be transient; a validation failure never is.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
