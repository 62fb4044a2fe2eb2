package validators

import (
	"fmt"
	"strings"
)

// Machine-readable codes carried by field-level validation errors.
const (
	CodeRequired          = "REQUIRED_FIELD_MISSING"
	CodeTooLong           = "VALUE_TOO_LONG"
	CodeDuplicateField    = "DUPLICATE_FIELD_NAME"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeInvalidFieldType  = "INVALID_FIELD_TYPE"
	CodeInvalidOptions    = "INVALID_OPTIONS"
	CodeInvalidConstraint = "INVALID_CONSTRAINT"
	CodeInvalidValue      = "INVALID_VALUE"
	CodeOutOfRange        = "VALUE_OUT_OF_RANGE"
)

// FieldError is a single field-level problem. The API boundary surfaces these
// in a details array so the caller can render per-field feedback.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError collects every field-level problem found in a payload.
// It is always recoverable by correcting input and never retried.
type ValidationError struct {
	Details []FieldError `json:"details"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Details))
	for i, d := range e.Details {
		msgs[i] = fmt.Sprintf("%s: %s", d.Field, d.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, code, format string, args ...interface{}) {
	e.Details = append(e.Details, FieldError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// orNil returns the error only if any detail was collected.
func (e *ValidationError) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}
