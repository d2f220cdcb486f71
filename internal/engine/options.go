package engine

import (
	"github.com/dshills/boothium/internal/renderer/core"
)

// Default configuration values.
const (
	DefaultTabWidth = 4
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithDefaultStyle sets the style of unformatted text.
func WithDefaultStyle(style core.Style) Option {
	return func(e *Engine) {
		e.defaultStyle = style
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
