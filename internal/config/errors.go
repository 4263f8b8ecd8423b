package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates one or more settings failed validation.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError describes a validation failure for a single setting.
type FieldError struct {
	// Path is the dotted setting path, e.g. "canvas.width".
	Path string
	// Value is the invalid value.
	Value any
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// ValidationError collects every failed setting of a configuration.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "invalid config: " + e.Fields[0].Error()
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("invalid config (%d errors): %s", len(e.Fields), strings.Join(msgs, "; "))
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) add(path string, value any, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{
		Path:    path,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// EnvError is returned when an environment override cannot be applied.
type EnvError struct {
	Name  string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *EnvError) Error() string {
	return fmt.Sprintf("env %s=%q: %v", e.Name, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvError) Unwrap() error {
	return e.Err
}
