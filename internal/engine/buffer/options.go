package buffer

import "github.com/dshills/boothium/internal/renderer/core"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithDefaultStyle sets the style given to unstyled text.
func WithDefaultStyle(style core.Style) Option {
	return func(b *Buffer) {
		b.defaultStyle = style
	}
}
