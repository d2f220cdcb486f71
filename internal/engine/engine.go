package engine

import (
	"io"
	"sync"

	"github.com/dshills/boothium/internal/engine/buffer"
	"github.com/dshills/boothium/internal/engine/cursor"
	"github.com/dshills/boothium/internal/renderer/core"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a code-point position in the buffer.
	Offset = buffer.Offset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a half-open span of the buffer.
	Range = buffer.Range

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// Change describes an applied edit; it is what listeners receive.
	Change = buffer.EditResult

	// Selection represents the cursor/selection.
	Selection = cursor.Selection
)

// ChangeListener is notified after every successful edit.
type ChangeListener func(Change)

// Engine is the main facade for the text buffer.
type Engine struct {
	mu sync.RWMutex

	buf       *buffer.Buffer
	selection Selection
	listeners []ChangeListener

	// Configuration
	tabWidth     int
	defaultStyle core.Style
	readOnly     bool

	// Initialization
	initContent string
}

// New creates a new engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:     DefaultTabWidth,
		defaultStyle: core.DefaultStyle(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewBufferFromString(e.initContent,
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithDefaultStyle(e.defaultStyle),
	)
	e.initContent = ""

	return e
}

// NewFromReader creates an engine with content read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithContent(string(data))}, opts...)...), nil
}

// Read Operations

// Text returns the full document text.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Len returns the document length in code points.
func (e *Engine) Len() int {
	return e.buf.Len()
}

// IsEmpty returns true if the document is empty.
func (e *Engine) IsEmpty() bool {
	return e.buf.IsEmpty()
}

// RuneAt returns the code point at offset; false when out of range.
func (e *Engine) RuneAt(offset Offset) (rune, bool) {
	return e.buf.RuneAt(offset)
}

// Slice returns the text covered by r.
func (e *Engine) Slice(r Range) (string, error) {
	return e.buf.Slice(r)
}

// LineRange returns the line enclosing offset, without its newline.
func (e *Engine) LineRange(offset Offset) Range {
	return e.buf.LineRange(offset)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// Lines returns the range of every line in document order.
func (e *Engine) Lines() []Range {
	return e.buf.Lines()
}

// OffsetToPoint converts an offset to line/column.
func (e *Engine) OffsetToPoint(offset Offset) Point {
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to an offset.
func (e *Engine) PointToOffset(p Point) Offset {
	return e.buf.PointToOffset(p)
}

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	return e.buf.TabWidth()
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// Selection Operations

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// Cursor returns the cursor (selection head) offset.
func (e *Engine) Cursor() Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection.Head
}

// SetCursor collapses the selection to offset, clamped to the document.
func (e *Engine) SetCursor(offset Offset) {
	e.SetSelection(cursor.NewCursorSelection(offset))
}

// Select selects r, with the cursor at its end.
func (e *Engine) Select(r Range) {
	e.SetSelection(cursor.NewRangeSelection(r))
}

// SetSelection replaces the selection, clamped to the document.
func (e *Engine) SetSelection(sel Selection) {
	n := e.buf.Len()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = sel.Clamp(n)
}

// OnChange registers a listener called after every edit.
func (e *Engine) OnChange(fn ChangeListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Write Operations

// Insert inserts text at offset and returns the end of the inserted text.
func (e *Engine) Insert(offset Offset, text string) (Offset, error) {
	res, err := e.ApplyEdit(buffer.NewInsert(offset, text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes the text in r.
func (e *Engine) Delete(r Range) error {
	_, err := e.ApplyEdit(buffer.NewDelete(r))
	return err
}

// Replace replaces the text in r and returns the end of the new text.
func (e *Engine) Replace(r Range, text string) (Offset, error) {
	res, err := e.ApplyEdit(Edit{Range: r, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// InsertAtCursor performs the default insertion for typed text: the
// selection (if any) is replaced and the cursor lands after the new text.
func (e *Engine) InsertAtCursor(text string) (Offset, error) {
	sel := e.Selection().Range()
	end, err := e.Replace(sel, text)
	if err != nil {
		return 0, err
	}
	e.SetCursor(end)
	return end, nil
}

// ApplyEdit applies a single edit, rebases the selection and notifies
// listeners.
func (e *Engine) ApplyEdit(edit Edit) (Change, error) {
	if e.IsReadOnly() {
		return Change{}, ErrReadOnly
	}

	res, err := e.buf.ApplyEdit(edit)
	if err != nil {
		return Change{}, err
	}

	e.mu.Lock()
	e.selection = cursor.TransformSelection(e.selection, res.Edit)
	listeners := make([]ChangeListener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(res)
	}

	return res, nil
}

// Formatting Operations

// SetForeground sets the foreground color over r.
func (e *Engine) SetForeground(r Range, c core.Color) error {
	return e.buf.SetForeground(r, c)
}

// SetBackground sets the background color over r.
func (e *Engine) SetBackground(r Range, c core.Color) error {
	return e.buf.SetBackground(r, c)
}

// ResetBackground restores the default background over the whole document.
func (e *Engine) ResetBackground() {
	e.buf.ResetBackground()
}

// ResetStyles restores the default style over the whole document.
func (e *Engine) ResetStyles() {
	e.buf.ResetStyles()
}

// StyleAt returns the style at offset.
func (e *Engine) StyleAt(offset Offset) core.Style {
	return e.buf.StyleAt(offset)
}

// Styles returns the styles covering r.
func (e *Engine) Styles(r Range) ([]core.Style, error) {
	return e.buf.Styles(r)
}

// SetContent replaces the whole document. Listeners are notified.
func (e *Engine) SetContent(content string) error {
	_, err := e.ApplyEdit(Edit{Range: Range{Start: 0, End: e.buf.Len()}, NewText: content})
	if err != nil {
		return err
	}
	e.SetCursor(0)
	return nil
}
