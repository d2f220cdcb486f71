package find

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/boothium/internal/engine/buffer"
	"github.com/dshills/boothium/internal/engine/cursor"
	"github.com/dshills/boothium/internal/renderer/core"
)

// State is the state of a find session.
type State uint8

// Find states.
const (
	// StateIdle means no search is active.
	StateIdle State = iota
	// StateSearching is held while a scan runs.
	StateSearching
	// StateFound means the last search has instances.
	StateFound
	// StateNoMatch means the last search found nothing.
	StateNoMatch
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// DefaultHighlightColor is the background given to every instance.
var DefaultHighlightColor = core.ColorFromRGB(255, 215, 0)

// Document is the part of the host buffer the find engine works against.
type Document interface {
	Text() string
	Selection() cursor.Selection
	Select(r buffer.Range)
	SetCursor(offset int)
	Replace(r buffer.Range, text string) (int, error)
	SetBackground(r buffer.Range, c core.Color) error
	ResetBackground()
}

// Notifier shows a user-visible notice.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Logger receives debug output.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets where "not found" notices go.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHighlightColor sets the instance background color.
func WithHighlightColor(c core.Color) Option {
	return func(e *Engine) {
		e.color = c
	}
}

// Engine finds and replaces instances of a term in a document.
// It is driven from the editor's event loop and is not safe for
// concurrent use.
type Engine struct {
	doc      Document
	index    Index
	term     string
	state    State
	color    core.Color
	notifier Notifier
	log      Logger
}

// New creates a find engine over doc.
func New(doc Document, opts ...Option) *Engine {
	e := &Engine{
		doc:      doc,
		color:    DefaultHighlightColor,
		notifier: nopNotifier{},
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Term returns the term of the last search.
func (e *Engine) Term() string {
	return e.term
}

// Len returns the number of live instances.
func (e *Engine) Len() int {
	return e.index.Len()
}

// Instances returns the live instance spans in document order.
func (e *Engine) Instances() []buffer.Range {
	return e.index.Spans()
}

// Current returns the rank of the instance matching the selection.
func (e *Engine) Current() (int, bool) {
	return e.index.Lookup(e.doc.Selection().Range())
}

// Find searches the document for term. An empty term does nothing.
// Every instance is highlighted and the first one is selected; when there
// is none a notice is shown.
func (e *Engine) Find(term string) {
	if term == "" {
		return
	}

	e.state = StateSearching
	e.Unhighlight()

	spans := Scan(e.doc.Text(), term)
	e.term = term
	e.index.Build(spans)
	e.log.Debug("find %q: %d instances", term, len(spans))

	if len(spans) == 0 {
		e.state = StateNoMatch
		e.notifier.Notify(fmt.Sprintf("%q not found", term))
		return
	}

	for _, s := range spans {
		if err := e.doc.SetBackground(s, e.color); err != nil {
			e.log.Debug("find: highlight %v: %v", s, err)
		}
	}
	e.state = StateFound
	e.doc.Select(spans[0])
}

// Next selects the instance after the current one, wrapping to the first.
// With one or no instance it does nothing.
func (e *Engine) Next() {
	n := e.index.Len()
	if n <= 1 {
		return
	}
	sel := e.doc.Selection().Range()
	var rank int
	if cur, ok := e.index.Lookup(sel); ok {
		rank = (cur + 1) % n
	} else {
		rank = e.index.LowerBound(sel.End) % n
	}
	e.selectRank(rank)
}

// Previous selects the instance before the current one, wrapping to the
// last. With one or no instance it does nothing.
func (e *Engine) Previous() {
	n := e.index.Len()
	if n <= 1 {
		return
	}
	sel := e.doc.Selection().Range()
	var rank int
	if cur, ok := e.index.Lookup(sel); ok {
		rank = (cur - 1 + n) % n
	} else {
		rank = (e.index.EndingBy(sel.Start) - 1 + n) % n
	}
	e.selectRank(rank)
}

// Replace replaces the selected instance with text and selects the next
// one. Without instances, or with an empty text, it does nothing. When the
// selection is not on an instance, the next instance is selected instead
// and nothing is replaced.
func (e *Engine) Replace(text string) {
	n := e.index.Len()
	if n == 0 || text == "" {
		return
	}

	sel := e.doc.Selection().Range()
	rank, ok := e.index.Lookup(sel)
	if !ok {
		e.selectRank(e.index.LowerBound(sel.End) % n)
		return
	}
	e.replaceRank(rank, text)
}

func (e *Engine) replaceRank(rank int, text string) {
	span, _ := e.index.At(rank)
	if err := e.doc.SetBackground(span, core.ColorDefault); err != nil {
		e.log.Debug("replace: unhighlight %v: %v", span, err)
	}

	end, err := e.doc.Replace(span, text)
	if err != nil {
		// The document changed behind our back; the spans are stale.
		e.log.Debug("replace %v: %v", span, err)
		return
	}

	e.index.Remove(rank)
	delta := utf8.RuneCountInString(text) - span.Len()
	e.index.ShiftFrom(span.End, delta)
	e.log.Debug("replace %v with %q: %d instances left", span, text, e.index.Len())

	if e.index.Len() == 0 {
		e.doc.SetCursor(end)
		e.state = StateIdle
		return
	}
	if rank >= e.index.Len() {
		rank = 0
	}
	e.selectRank(rank)
}

// ReplaceAll replaces every instance with text, then clears all
// highlighting. The number of replacements is fixed when it is called.
// It returns the number of instances replaced.
func (e *Engine) ReplaceAll(text string) int {
	count := e.index.Len()
	if count == 0 || text == "" {
		return 0
	}

	rank, ok := e.index.Lookup(e.doc.Selection().Range())
	if !ok {
		rank = 0
	}

	replaced := 0
	for range count {
		if e.index.Len() == 0 {
			break
		}
		if rank >= e.index.Len() {
			rank = 0
		}
		before := e.index.Len()
		e.replaceRank(rank, text)
		if e.index.Len() == before {
			break
		}
		replaced++
	}

	e.Unhighlight()
	e.log.Debug("replace all %q with %q: %d replaced", e.term, text, replaced)
	return replaced
}

// Unhighlight resets the background of the whole document.
func (e *Engine) Unhighlight() {
	e.doc.ResetBackground()
}

// Close ends the session: highlighting is cleared and instances dropped.
func (e *Engine) Close() {
	e.Unhighlight()
	e.index.Clear()
	e.term = ""
	e.state = StateIdle
}

func (e *Engine) selectRank(rank int) {
	if span, ok := e.index.At(rank); ok {
		e.doc.Select(span)
	}
}
