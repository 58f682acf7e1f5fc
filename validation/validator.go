package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/nexus/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string           `json:"field"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

func (v *Validator) add(field string, code errors.ErrorCode, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
// The error carries the field errors' code when they all share one and
// VALIDATION_ERROR otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	code := v.errors[0].Code
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
		if e.Code != code {
			code = errors.ErrCodeValidation
		}
	}

	appErr := errors.New(code, strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}
	return appErr
}

// RequiredKeys checks that every key is present in record.
// Keys are reported as field.key.
func (v *Validator) RequiredKeys(field string, record map[string]any, keys ...string) *Validator {
	for _, k := range keys {
		if _, ok := record[k]; !ok {
			v.add(field+"."+k, errors.ErrCodeMissingField, "is required")
		}
	}
	return v
}

// Contains checks that value contains substr.
func (v *Validator) Contains(field, value, substr string) *Validator {
	if !strings.Contains(value, substr) {
		v.add(field, errors.ErrCodeInvalidFormat, fmt.Sprintf("must contain %q", substr))
	}
	return v
}
