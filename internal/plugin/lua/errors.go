package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoLanguage is returned when a script defines no language.
	ErrNoLanguage = errors.New("script defines no language")

	// ErrInvalidLanguage is returned for a malformed language table.
	ErrInvalidLanguage = errors.New("invalid language definition")
)
