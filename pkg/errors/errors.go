package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"

	// Resolution errors
	ErrUnknownPackage     ErrorCode = "UNKNOWN_PACKAGE"
	ErrResourceDefinition ErrorCode = "RESOURCE_DEFINITION"
	ErrResourceConflict   ErrorCode = "RESOURCE_CONFLICT"
	ErrNoSuchMapping      ErrorCode = "NO_SUCH_MAPPING"

	// Override graph errors
	ErrUnknownNode   ErrorCode = "UNKNOWN_NODE"
	ErrOverrideCycle ErrorCode = "OVERRIDE_CYCLE"

	// Repository store errors
	ErrStore ErrorCode = "STORE"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// NewConflictError reports two packages contributing to the same repository
// path without an override relationship between them.
func NewConflictError(path, package1, package2 string) *Error {
	return Newf(ErrResourceConflict,
		"packages %q and %q both map %s; add one of them to the other's \"override\" list or to \"override-order\"",
		package1, package2, path).
		WithDetail("path", path).
		WithDetail("package1", package1).
		WithDetail("package2", package2)
}

// NewNoSuchMappingError reports a repository path the root package does not map.
func NewNoSuchMappingError(path string) *Error {
	return Newf(ErrNoSuchMapping, "no resource mapping for %s", path).
		WithDetail("path", path)
}
