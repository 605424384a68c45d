package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrTypeInvalidDefault ErrorType = "invalid_default"
	ErrTypeSerialization  ErrorType = "serialization"
	ErrTypeIdentifier     ErrorType = "identifier"
	ErrTypeSchema         ErrorType = "schema"
	ErrTypeConfig         ErrorType = "config"
	ErrTypeDatabase       ErrorType = "database"
	ErrTypeFileSystem     ErrorType = "filesystem"
	ErrTypeInternal       ErrorType = "internal"
)

// Error represents a structured error with type and optional suggestions
type Error struct {
	Type        ErrorType
	Message     string
	Cause       error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion for resolving the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// New creates a new structured error
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new structured error with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type == errType
	}

	return false
}

// AsError reports whether err's chain contains a structured *Error and
// stores it in target, mirroring errors.As for callers that shadow the
// standard package name.
func AsError(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetType returns the error type if it's a structured error
func GetType(err error) ErrorType {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type
	}

	return ErrTypeInternal
}

// NewSerializationError reports a default value that could not be serialized.
// The field name is part of the message so callers can tell which column
// broke the table's compilation.
func NewSerializationError(table, field string, cause error) *Error {
	return Wrapf(
		cause,
		ErrTypeSerialization,
		"cannot serialize default value for field %q of collection %q",
		field, table,
	).WithSuggestion("Remove cyclic references and non-finite numbers from the default value")
}

// NewInvalidDefaultError reports a default value whose runtime shape does not
// match the field's declared type.
func NewInvalidDefaultError(field string, fieldType, got interface{}) *Error {
	return Newf(
		ErrTypeInvalidDefault,
		"default value for field %q does not match type %v (got %T)",
		field, fieldType, got,
	).WithSuggestion("Check the field's default value in the schema definition")
}

// NewConfigError creates a configuration error with suggestions
func NewConfigError(message, field string) *Error {
	err := New(ErrTypeConfig, message)
	if field != "" {
		err.Message = fmt.Sprintf("%s (field: %s)", message, field)
	}

	return err.
		WithSuggestion("Check your configuration file syntax").
		WithSuggestion("Run with --help to see valid configuration options")
}
