package highlight

import (
	"github.com/dshills/boothium/internal/engine/buffer"
	"github.com/dshills/boothium/internal/renderer/core"
)

// Document is the part of the host buffer the highlighter works against.
type Document interface {
	// Len returns the document length in code points.
	Len() int

	// Slice returns the text covered by r.
	Slice(r buffer.Range) (string, error)

	// LineRange returns the line enclosing offset, without its newline.
	LineRange(offset int) buffer.Range

	// Cursor returns the cursor offset.
	Cursor() int

	// SetForeground sets the foreground color over r.
	SetForeground(r buffer.Range, c core.Color) error
}

// Highlighter paints the tokens of a rule set onto a document.
type Highlighter struct {
	rules  *RuleSet
	scheme ColorScheme
	doc    Document
}

// NewHighlighter creates a highlighter. A nil scheme selects
// DefaultColorScheme.
func NewHighlighter(rules *RuleSet, scheme ColorScheme, doc Document) *Highlighter {
	if scheme == nil {
		scheme = DefaultColorScheme()
	}
	return &Highlighter{
		rules:  rules,
		scheme: scheme,
		doc:    doc,
	}
}

// Rules returns the highlighter's rule set.
func (h *Highlighter) Rules() *RuleSet {
	return h.rules
}

// Scheme returns the highlighter's color scheme.
func (h *Highlighter) Scheme() ColorScheme {
	return h.scheme
}

// HighlightAll tokenizes the whole document once and paints every token.
// It returns the number of tokens painted.
func (h *Highlighter) HighlightAll() (int, error) {
	return h.HighlightRange(buffer.Range{Start: 0, End: h.doc.Len()})
}

// HighlightLine repaints only the line enclosing the cursor.
// Formatting outside that line is left untouched.
func (h *Highlighter) HighlightLine() (int, error) {
	return h.HighlightLineAt(h.doc.Cursor())
}

// HighlightLineAt repaints only the line enclosing offset.
func (h *Highlighter) HighlightLineAt(offset int) (int, error) {
	return h.HighlightRange(h.doc.LineRange(offset))
}

// HighlightRange tokenizes the text in r, starting a fresh scan at
// r.Start, and paints the tokens.
func (h *Highlighter) HighlightRange(r buffer.Range) (int, error) {
	text, err := h.doc.Slice(r)
	if err != nil {
		return 0, err
	}

	n := 0
	for tok := range h.rules.Tokens(text, r.Start) {
		span := buffer.Range{Start: tok.Start, End: tok.End}
		if err := h.doc.SetForeground(span, h.scheme.ColorFor(tok.Type)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
