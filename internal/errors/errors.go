package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an engine or service error
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidParameter indicates a malformed enum such as a band or roll state
	CodeInvalidParameter Code = "invalid_parameter"

	// CodeUnsupportedVariant indicates a variant tag outside a build's declared set
	CodeUnsupportedVariant Code = "unsupported_variant"

	// CodeUnsupportedLevel indicates a level outside 1-20
	CodeUnsupportedLevel Code = "unsupported_level"

	// CodeInvalidDamageShape indicates a non-positive die size or dice count
	CodeInvalidDamageShape Code = "invalid_damage_shape"

	// CodeValidation indicates a configuration that failed validation
	CodeValidation Code = "validation"

	// CodeNotFound indicates a requested report or preset was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"
)

// Error is an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta carries context such as the series label, variant and level
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// Already one of ours, keep its code and meta
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return &Error{
			Code:    dndErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(dndErr.Meta),
		}
	}

	// Anything else is unknown until the caller says otherwise
	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// InvalidParameterf creates a formatted invalid parameter error
func InvalidParameterf(format string, args ...any) *Error {
	return Newf(CodeInvalidParameter, format, args...)
}

// UnsupportedVariantf creates a formatted unsupported variant error
func UnsupportedVariantf(format string, args ...any) *Error {
	return Newf(CodeUnsupportedVariant, format, args...)
}

// UnsupportedLevel creates an unsupported level error for the given level
func UnsupportedLevel(level int) *Error {
	return Newf(CodeUnsupportedLevel, "level %d is outside 1-20", level).WithMeta("level", level)
}

// InvalidDamageShapef creates a formatted invalid damage shape error
func InvalidDamageShapef(format string, args ...any) *Error {
	return Newf(CodeInvalidDamageShape, format, args...)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code == code
	}
	return false
}

// IsInvalidParameter checks if the error is an invalid parameter error
func IsInvalidParameter(err error) bool {
	return Is(err, CodeInvalidParameter)
}

// IsUnsupportedVariant checks if the error is an unsupported variant error
func IsUnsupportedVariant(err error) bool {
	return Is(err, CodeUnsupportedVariant)
}

// IsUnsupportedLevel checks if the error is an unsupported level error
func IsUnsupportedLevel(err error) bool {
	return Is(err, CodeUnsupportedLevel)
}

// IsInvalidDamageShape checks if the error is an invalid damage shape error
func IsInvalidDamageShape(err error) bool {
	return Is(err, CodeInvalidDamageShape)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
