package input

import (
	"strings"
	"unicode"
)

// Document is the part of the host buffer the transformer works against.
type Document interface {
	// RuneAt returns the code point at offset; false when out of range.
	RuneAt(offset int) (rune, bool)

	// Insert inserts text at offset and returns the end of the new text.
	Insert(offset int, text string) (int, error)

	// Cursor returns the cursor offset.
	Cursor() int

	// SetCursor collapses the selection to offset.
	SetCursor(offset int)
}

// Options switches the transformations on or off.
type Options struct {
	AutoIndent        bool
	AutoCloseBrackets bool
	AutoCloseQuotes   bool
}

// DefaultOptions enables everything.
func DefaultOptions() Options {
	return Options{
		AutoIndent:        true,
		AutoCloseBrackets: true,
		AutoCloseQuotes:   true,
	}
}

// Action identifies what a transformation did.
type Action uint8

// Transformer actions.
const (
	ActionNone Action = iota
	ActionIndent
	ActionCloseBracket
	ActionCloseQuote
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionIndent:
		return "indent"
	case ActionCloseBracket:
		return "close-bracket"
	case ActionCloseQuote:
		return "close-quote"
	default:
		return "none"
	}
}

// Result describes what Apply did.
type Result struct {
	Action   Action
	Inserted string
	Cursor   int
}

// Changed returns true if the transformer modified the document.
func (r Result) Changed() bool {
	return r.Inserted != ""
}

var closers = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'\'': '\'',
	'"':  '"',
}

// indentOpeners end a line that opens a block.
const indentOpeners = "{([:"

// Transformer applies auto-indent and auto-close after a keystroke.
type Transformer struct {
	opts Options
}

// New creates a transformer with the given options.
func New(opts Options) *Transformer {
	return &Transformer{opts: opts}
}

// Options returns the transformer's options.
func (t *Transformer) Options() Options {
	return t.opts
}

// Apply runs the transformation for r, which has just been inserted.
// before is the cursor offset from before the insertion.
func (t *Transformer) Apply(doc Document, r rune, before int) (Result, error) {
	switch r {
	case '\n':
		if t.opts.AutoIndent {
			return t.indent(doc, before)
		}
	case '(', '[', '{':
		if t.opts.AutoCloseBrackets {
			return t.close(doc, r, ActionCloseBracket)
		}
	case '\'', '"':
		if t.opts.AutoCloseQuotes {
			return t.close(doc, r, ActionCloseQuote)
		}
	}
	return Result{Cursor: doc.Cursor()}, nil
}

// IndentLevel returns the number of tabs a new line opened at offset
// should start with.
func IndentLevel(doc Document, offset int) int {
	start := offset
	for start > 0 {
		r, ok := doc.RuneAt(start - 1)
		if !ok || r == '\n' {
			break
		}
		start--
	}

	level := 0
	for i := start; i < offset; i++ {
		if r, _ := doc.RuneAt(i); r != '\t' {
			break
		}
		level++
	}

	last := offset
	for last > start {
		r, _ := doc.RuneAt(last - 1)
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		last--
	}
	if last > start {
		if r, _ := doc.RuneAt(last - 1); strings.ContainsRune(indentOpeners, r) {
			level++
		}
	}
	return level
}

func (t *Transformer) indent(doc Document, before int) (Result, error) {
	level := IndentLevel(doc, before)
	cur := doc.Cursor()
	if level == 0 {
		return Result{Cursor: cur}, nil
	}

	tabs := strings.Repeat("\t", level)
	end, err := doc.Insert(cur, tabs)
	if err != nil {
		return Result{Cursor: cur}, err
	}
	doc.SetCursor(end)
	return Result{Action: ActionIndent, Inserted: tabs, Cursor: end}, nil
}

func (t *Transformer) close(doc Document, open rune, action Action) (Result, error) {
	cur := doc.Cursor()
	closer := string(closers[open])
	if _, err := doc.Insert(cur, closer); err != nil {
		return Result{Cursor: cur}, err
	}
	doc.SetCursor(cur)
	return Result{Action: action, Inserted: closer, Cursor: cur}, nil
}
