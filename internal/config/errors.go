package config

import (
	"errors"
	"fmt"

	"github.com/dshills/boothium/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownKey indicates the key is not a recognized setting.
	ErrUnknownKey = errors.New("unknown setting")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange indicates a numeric value is out of range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidValue indicates the value is of the right type but not allowed.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnsupportedFormat indicates the settings file extension is unknown.
	ErrUnsupportedFormat = loader.ErrUnsupportedFormat
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Key is the setting key that failed validation.
	Key string
	// Value is the invalid value.
	Value any
	// Err is one of the sentinel errors of this package.
	Err error
	// Message adds detail, if any.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("setting %s: %v: %s (value: %v)", e.Key, e.Err, e.Message, e.Value)
	}
	return fmt.Sprintf("setting %s: %v (value: %v)", e.Key, e.Err, e.Value)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(key string, value any, err error, format string, args ...any) error {
	return &ValidationError{Key: key, Value: value, Err: err, Message: fmt.Sprintf(format, args...)}
}
