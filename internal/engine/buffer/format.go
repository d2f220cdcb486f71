package buffer

import "github.com/dshills/boothium/internal/renderer/core"

// StyleAt returns the style of the code point at offset.
// Out-of-range offsets report the default style.
func (b *Buffer) StyleAt(offset Offset) core.Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.styles) {
		return b.defaultStyle
	}
	return b.styles[offset]
}

// Styles returns a copy of the styles covering r.
func (b *Buffer) Styles(r Range) ([]core.Style, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRange(r); err != nil {
		return nil, err
	}
	out := make([]core.Style, r.Len())
	copy(out, b.styles[r.Start:r.End])
	return out, nil
}

// SetForeground sets the foreground color of every code point in r.
func (b *Buffer) SetForeground(r Range, c core.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkRange(r); err != nil {
		return err
	}
	for i := r.Start; i < r.End; i++ {
		b.styles[i].Foreground = c
	}
	return nil
}

// SetBackground sets the background color of every code point in r.
func (b *Buffer) SetBackground(r Range, c core.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkRange(r); err != nil {
		return err
	}
	for i := r.Start; i < r.End; i++ {
		b.styles[i].Background = c
	}
	return nil
}

// ResetBackground restores the default background across the whole document.
// Foreground colors are kept.
func (b *Buffer) ResetBackground() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.styles {
		b.styles[i].Background = b.defaultStyle.Background
	}
}

// ResetStyles restores the default style across the whole document.
func (b *Buffer) ResetStyles() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.styles {
		b.styles[i] = b.defaultStyle
	}
}
