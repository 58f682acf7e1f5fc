package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Payload errors ---

// Validation creates a new AppError for a payload that fails a shape contract.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// --- Execution errors ---

// StageFailure creates a new AppError for the stage at index that failed with cause.
func StageFailure(index int, stage string, cause error) *AppError {
	return New(ErrCodeStageFailure, fmt.Sprintf("stage %d (%s) failed", index, stage)).
		WithCause(cause).
		WithDetails(map[string]any{"stage_index": index, "stage": stage})
}

// ChainHalt creates a new AppError for a chain that stopped at step.
func ChainHalt(step int, producerID string) *AppError {
	return New(ErrCodeChainHalt, fmt.Sprintf("chain halted at step %d (%s)", step, producerID)).
		WithDetails(map[string]any{"step": step, "producer_id": producerID})
}

// Cancelled creates a new AppError for work abandoned because ctx ended.
func Cancelled(cause error) *AppError {
	return New(ErrCodeCancelled, "processing cancelled").WithCause(cause)
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// Config creates a new AppError for invalid configuration.
func Config(message string) *AppError {
	return New(ErrCodeConfig, message)
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether the outermost AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsValidation reports whether err is a payload validation failure.
// Missing fields and format errors count as validation failures.
func IsValidation(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeMissingField, ErrCodeInvalidFormat:
		return true
	}
	return false
}

// IsStageFailure reports whether err is a stage failure.
func IsStageFailure(err error) bool {
	return HasCode(err, ErrCodeStageFailure)
}

// StageIndex returns the failing stage index carried by a stage failure.
func StageIndex(err error) (int, bool) {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != ErrCodeStageFailure {
		return 0, false
	}
	idx, ok := appErr.Details["stage_index"].(int)
	return idx, ok
}
