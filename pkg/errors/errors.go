// Package errors defines the coded errors shared across sparklines.
//
// Rendering can fail in three ways, each with its own [Code]:
// INVALID_CONFIGURATION for settings that fail validation, INVALID_VALUE
// for values that cannot be read as numbers and GEOMETRY_ERROR when the
// viewport or a shape would not be finite. A chart that hits one of them
// enters its error state and shows a placeholder; [IsRender] tells these
// apart from IO and usage failures. The remaining codes belong to the CLI
// and the HTTP service.
//
//	err := errors.Value("invalid non numeric value for value %s (%s)", name, raw)
//	if errors.IsRender(err) {
//	    fmt.Println(errors.Kind(err)) // ValueError
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is the machine-readable part of an [Error]. The HTTP service returns
// it verbatim in error bodies.
type Code string

const (
	ErrCodeConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeValue         Code = "INVALID_VALUE"
	ErrCodeGeometry      Code = "GEOMETRY_ERROR"

	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
)

// Render reports whether c is one of the three chart error codes.
func (c Code) Render() bool {
	return c == ErrCodeConfiguration || c == ErrCodeValue || c == ErrCodeGeometry
}

// Kind names the error family of a render code, e.g. "GeometryError".
// Other codes have no kind.
func (c Code) Kind() string {
	switch c {
	case ErrCodeConfiguration:
		return "ConfigurationError"
	case ErrCodeValue:
		return "ValueError"
	case ErrCodeGeometry:
		return "GeometryError"
	}
	return ""
}

// Error carries a code, a message meant for users and an optional cause.
// Error() renders as "CODE: message" or "CODE: message: cause".
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Configuration returns an INVALID_CONFIGURATION error.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Value returns an INVALID_VALUE error.
func Value(format string, args ...any) *Error {
	return New(ErrCodeValue, format, args...)
}

// Geometry returns a GEOMETRY_ERROR.
func Geometry(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsRender reports whether err sends a chart into its error state.
func IsRender(err error) bool { return GetCode(err).Render() }

// Kind returns the error family name of a render error, "" otherwise.
func Kind(err error) string { return GetCode(err).Kind() }

// UserMessage strips the code prefix and cause from an *Error. Other
// errors are returned as their Error() text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
