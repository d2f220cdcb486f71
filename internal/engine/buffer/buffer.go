package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/dshills/boothium/internal/renderer/core"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer stores the document as code points plus one style per code point.
// All methods are thread-safe.
type Buffer struct {
	mu           sync.RWMutex
	text         []rune
	styles       []core.Style
	defaultStyle core.Style
	tabWidth     int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		defaultStyle: core.DefaultStyle(),
		tabWidth:     4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = []rune(normalizeLineEndings(s))
	b.styles = b.fillStyles(len(b.text))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF so that a line is always
// delimited by a single '\n'.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (b *Buffer) fillStyles(n int) []core.Style {
	styles := make([]core.Style, n)
	for i := range styles {
		styles[i] = b.defaultStyle
	}
	return styles
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// Len returns the number of code points in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// RuneAt returns the code point at offset.
// The second result is false when offset is outside [0, Len()).
func (b *Buffer) RuneAt(offset Offset) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	return b.text[offset], true
}

// Slice returns the text covered by r.
func (b *Buffer) Slice(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return string(b.text[r.Start:r.End]), nil
}

// LineRange returns the line enclosing offset, without its newline.
// It scans backward to the previous '\n' (or buffer start) and forward to
// the next '\n' (or buffer end), so the cost is proportional to the line
// length, not the document size. Offsets outside the buffer are clamped.
func (b *Buffer) LineRange(offset Offset) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineRange(offset)
}

func (b *Buffer) lineRange(offset Offset) Range {
	offset = max(0, min(offset, len(b.text)))

	start := offset
	for start > 0 && b.text[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(b.text) && b.text[end] != '\n' {
		end++
	}
	return Range{Start: start, End: end}
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines returns the range of every line in document order.
func (b *Buffer) Lines() []Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lines := make([]Range, 0, 16)
	start := 0
	for i, r := range b.text {
		if r == '\n' {
			lines = append(lines, Range{Start: start, End: i})
			start = i + 1
		}
	}
	return append(lines, Range{Start: start, End: len(b.text)})
}

// OffsetToPoint converts an offset to a line/column pair.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = max(0, min(offset, len(b.text)))
	var p Point
	for _, r := range b.text[:offset] {
		if r == '\n' {
			p.Line++
			p.Column = 0
			continue
		}
		p.Column++
	}
	return p
}

// PointToOffset converts a line/column pair to an offset.
// Columns past the end of the line clamp to the line end; lines past the
// end of the document clamp to the buffer end.
func (b *Buffer) PointToOffset(p Point) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := 0
	start := 0
	for line < p.Line {
		i := start
		for i < len(b.text) && b.text[i] != '\n' {
			i++
		}
		if i >= len(b.text) {
			return len(b.text)
		}
		start = i + 1
		line++
	}
	lr := b.lineRange(start)
	return min(start+max(0, p.Column), lr.End)
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(r Range) error {
	_, err := b.ApplyEdit(NewDelete(r))
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(r Range, text string) (Offset, error) {
	res, err := b.ApplyEdit(Edit{Range: r, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
// Replacement text takes the default style.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if edit.Range.Start == edit.Range.End && (edit.Range.Start < 0 || edit.Range.Start > len(b.text)) {
		return EditResult{}, ErrOffsetOutOfRange
	}
	if err := b.checkRange(edit.Range); err != nil {
		return EditResult{}, err
	}

	edit.NewText = normalizeLineEndings(edit.NewText)
	ins := []rune(edit.NewText)
	oldText := string(b.text[edit.Range.Start:edit.Range.End])

	text := make([]rune, 0, len(b.text)-edit.Range.Len()+len(ins))
	text = append(text, b.text[:edit.Range.Start]...)
	text = append(text, ins...)
	text = append(text, b.text[edit.Range.End:]...)

	styles := make([]core.Style, 0, len(text))
	styles = append(styles, b.styles[:edit.Range.Start]...)
	styles = append(styles, b.fillStyles(len(ins))...)
	styles = append(styles, b.styles[edit.Range.End:]...)

	b.text = text
	b.styles = styles

	return EditResult{
		Edit:     edit,
		NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + len(ins)},
		OldText:  oldText,
		Delta:    len(ins) - edit.Range.Len(),
	}, nil
}

func (b *Buffer) checkRange(r Range) error {
	if r.Start < 0 || r.Start > r.End || r.End > len(b.text) {
		return ErrRangeInvalid
	}
	return nil
}
