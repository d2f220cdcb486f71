package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/boothium/internal/config"
	"github.com/dshills/boothium/internal/engine"
	"github.com/dshills/boothium/internal/find"
	"github.com/dshills/boothium/internal/input"
	"github.com/dshills/boothium/internal/renderer/highlight"
)

// Logger receives the editor's diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithNotifier sets where user-visible notices go.
func WithNotifier(n find.Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithID sets the editor ID. By default a random one is generated.
func WithID(id uuid.UUID) Option {
	return func(e *Editor) {
		e.id = id
	}
}

// WithDefinition highlights with a custom language definition instead of
// a built-in language.
func WithDefinition(def highlight.Definition) Option {
	return func(e *Editor) {
		e.def = &def
	}
}

// Editor is the core of an editing widget: a document plus highlighting,
// find and replace, and the keystroke transformations.
//
// An Editor is driven from a single event loop and is not safe for
// concurrent use.
type Editor struct {
	id       uuid.UUID
	lang     highlight.Language
	def      *highlight.Definition
	settings config.Settings

	doc         *engine.Engine
	highlighter *highlight.Highlighter
	finder      *find.Engine
	transformer *input.Transformer

	notifier find.Notifier
	log      Logger

	modified bool
	goal     int
	top      int
}

// New creates an editor holding text.
//
// The rule set is built from lang (or the definition given with
// WithDefinition) and the keyword overrides of settings; a broken rule
// set or color scheme is returned as an error. No highlighter is created
// when highlighting is off or the language is unknown.
func New(text string, lang highlight.Language, settings config.Settings, opts ...Option) (*Editor, error) {
	e := &Editor{
		lang:     lang,
		settings: settings,
		notifier: find.NotifierFunc(func(string) {}),
		log:      nopLogger{},
		goal:     -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}

	e.doc = engine.New(engine.WithContent(text), engine.WithTabWidth(settings.TabWidth))
	e.doc.OnChange(func(engine.Change) { e.modified = true })
	e.transformer = input.New(inputOptions(settings))

	h, f, err := e.build(settings)
	if err != nil {
		return nil, err
	}
	e.highlighter, e.finder = h, f
	e.highlightAll()

	e.log.Debug("editor %s: language %s, %d lines", e.id, e.Language(), e.doc.LineCount())
	return e, nil
}

func inputOptions(s config.Settings) input.Options {
	return input.Options{
		AutoIndent:        s.AutoIndent,
		AutoCloseBrackets: s.AutoCloseBrackets,
		AutoCloseQuotes:   s.AutoCloseQuotes,
	}
}

// build creates the highlighter and find engine for s without touching
// the editor.
func (e *Editor) build(s config.Settings) (*highlight.Highlighter, *find.Engine, error) {
	color := find.DefaultHighlightColor
	if s.FindHighlight != "" {
		c, err := s.FindHighlightColor()
		if err != nil {
			return nil, nil, err
		}
		color = c
	}
	f := find.New(e.doc,
		find.WithNotifier(e.notifier),
		find.WithLogger(e.log),
		find.WithHighlightColor(color),
	)

	rules, err := e.ruleSet(s)
	if err != nil || rules == nil {
		return nil, f, err
	}
	overrides, err := s.ParsedColorScheme()
	if err != nil {
		return nil, nil, err
	}
	scheme := highlight.DefaultColorScheme().Merge(overrides)
	return highlight.NewHighlighter(rules, scheme, e.doc), f, nil
}

func (e *Editor) ruleSet(s config.Settings) (*highlight.RuleSet, error) {
	if !s.SyntaxHighlighting {
		return nil, nil
	}
	if e.def != nil {
		def := *e.def
		if words, ok := s.Keywords(def.Name); ok {
			def.Keywords = words
		}
		return def.RuleSet()
	}
	if e.lang == highlight.LanguageUnknown {
		return nil, nil
	}
	var words []string
	if w, ok := s.Keywords(e.lang.String()); ok {
		words = w
	}
	return highlight.RulesFor(e.lang, words)
}

// ID returns the editor ID.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Language returns the name of the highlighted language.
func (e *Editor) Language() string {
	if e.def != nil {
		return e.def.Name
	}
	return e.lang.String()
}

// Settings returns the settings in effect.
func (e *Editor) Settings() config.Settings {
	return e.settings
}

// Document returns the underlying document.
func (e *Editor) Document() *engine.Engine {
	return e.doc
}

// Highlighter returns the highlighter, or nil when highlighting is off.
func (e *Editor) Highlighter() *highlight.Highlighter {
	return e.highlighter
}

// Finder returns the find engine.
func (e *Editor) Finder() *find.Engine {
	return e.finder
}

// Text returns the document text.
func (e *Editor) Text() string {
	return e.doc.Text()
}

// Modified reports whether the document changed since it was created or
// last marked saved.
func (e *Editor) Modified() bool {
	return e.modified
}

// MarkSaved clears the modified flag.
func (e *Editor) MarkSaved() {
	e.modified = false
}

// UpdateSettings applies new settings. The transformer always follows
// them; when anything affecting highlighting changed the rule set,
// highlighter and find engine are rebuilt and the whole document is
// repainted. On error the editor keeps its previous settings.
func (e *Editor) UpdateSettings(s config.Settings) error {
	if !e.settings.HighlightingChanged(s) {
		e.settings = s
		e.transformer = input.New(inputOptions(s))
		return nil
	}

	h, f, err := e.build(s)
	if err != nil {
		return err
	}

	term, active := e.finder.Term(), e.finder.State() == find.StateFound
	e.finder.Close()

	e.settings = s
	e.transformer = input.New(inputOptions(s))
	e.highlighter, e.finder = h, f
	e.doc.ResetStyles()
	e.highlightAll()
	if active {
		e.finder.Find(term)
	}

	e.log.Debug("editor %s: settings reloaded, highlighting %t", e.id, e.highlighter != nil)
	return nil
}

// Editing

// Type inserts r at the cursor, replacing the selection, then applies the
// keystroke transformations and repaints the edited line.
func (e *Editor) Type(r rune) {
	e.endFind()
	before := e.doc.Selection().Range().Start
	if _, err := e.doc.InsertAtCursor(string(r)); err != nil {
		e.log.Warn("editor %s: insert %q: %v", e.id, r, err)
		return
	}
	e.goal = -1

	if _, err := e.transformer.Apply(e.doc, r, before); err != nil {
		e.log.Warn("editor %s: transform %q: %v", e.id, r, err)
	}

	if r == '\n' {
		e.highlightLine(before)
	}
	e.highlightLine(e.doc.Cursor())
}

// Newline inserts a line break.
func (e *Editor) Newline() {
	e.Type('\n')
}

// Backspace deletes the selection or the code point before the cursor.
func (e *Editor) Backspace() {
	r := e.doc.Selection().Range()
	if r.IsEmpty() {
		if r.Start == 0 {
			return
		}
		r.Start--
	}
	e.deleteRange(r)
}

// Delete deletes the selection or the code point after the cursor.
func (e *Editor) Delete() {
	r := e.doc.Selection().Range()
	if r.IsEmpty() {
		if r.End >= e.doc.Len() {
			return
		}
		r.End++
	}
	e.deleteRange(r)
}

func (e *Editor) deleteRange(r engine.Range) {
	e.endFind()
	if err := e.doc.Delete(r); err != nil {
		e.log.Warn("editor %s: delete %v: %v", e.id, r, err)
		return
	}
	e.moveTo(r.Start)
	e.highlightLine(r.Start)
}

// endFind closes an open find session before the text is edited by hand,
// since its instances would no longer line up with the text.
func (e *Editor) endFind() {
	if e.finder.State() != find.StateIdle {
		e.finder.Close()
	}
}

func (e *Editor) highlightLine(offset int) {
	if e.highlighter == nil {
		return
	}
	if _, err := e.highlighter.HighlightLineAt(offset); err != nil {
		e.log.Warn("editor %s: highlight line: %v", e.id, err)
	}
}

func (e *Editor) highlightAll() {
	if e.highlighter == nil {
		return
	}
	n, err := e.highlighter.HighlightAll()
	if err != nil {
		e.log.Warn("editor %s: highlight: %v", e.id, err)
		return
	}
	e.log.Debug("editor %s: painted %d tokens", e.id, n)
}

// Cursor movement

// CursorPoint returns the line and column of the cursor.
func (e *Editor) CursorPoint() engine.Point {
	return e.doc.OffsetToPoint(e.doc.Cursor())
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	return e.doc.LineCount()
}

func (e *Editor) moveTo(offset int) {
	e.goal = -1
	e.doc.SetCursor(max(0, min(offset, e.doc.Len())))
}

// MoveLeft moves the cursor one code point left, or to the start of the
// selection.
func (e *Editor) MoveLeft() {
	r := e.doc.Selection().Range()
	if !r.IsEmpty() {
		e.moveTo(r.Start)
		return
	}
	e.moveTo(r.Start - 1)
}

// MoveRight moves the cursor one code point right, or to the end of the
// selection.
func (e *Editor) MoveRight() {
	r := e.doc.Selection().Range()
	if !r.IsEmpty() {
		e.moveTo(r.End)
		return
	}
	e.moveTo(r.End + 1)
}

// MoveUp moves the cursor to the previous line, keeping the column where
// the line is long enough.
func (e *Editor) MoveUp() {
	e.moveVertical(-1)
}

// MoveDown moves the cursor to the next line.
func (e *Editor) MoveDown() {
	e.moveVertical(1)
}

func (e *Editor) moveVertical(delta int) {
	p := e.CursorPoint()
	line := p.Line + delta
	if line < 0 || line >= e.doc.LineCount() {
		return
	}
	if e.goal < 0 {
		e.goal = p.Column
	}
	e.doc.SetCursor(e.doc.PointToOffset(engine.Point{Line: line, Column: e.goal}))
}

// Home moves the cursor to the start of its line.
func (e *Editor) Home() {
	e.moveTo(e.doc.LineRange(e.doc.Cursor()).Start)
}

// End moves the cursor to the end of its line.
func (e *Editor) End() {
	e.moveTo(e.doc.LineRange(e.doc.Cursor()).End)
}

// Scroll returns the first line to show in a view of height lines,
// scrolled just enough to keep the cursor visible.
func (e *Editor) Scroll(height int) int {
	if height <= 0 {
		return e.top
	}
	line := e.CursorPoint().Line
	switch {
	case line < e.top:
		e.top = line
	case line >= e.top+height:
		e.top = line - height + 1
	}
	e.top = max(0, min(e.top, e.doc.LineCount()-1))
	return e.top
}

// Find and replace

// Find starts a search for term.
func (e *Editor) Find(term string) {
	e.goal = -1
	e.finder.Find(term)
}

// FindNext selects the next instance.
func (e *Editor) FindNext() {
	e.goal = -1
	e.finder.Next()
}

// FindPrevious selects the previous instance.
func (e *Editor) FindPrevious() {
	e.goal = -1
	e.finder.Previous()
}

// Replace replaces the selected instance with text.
func (e *Editor) Replace(text string) {
	e.goal = -1
	start := e.doc.Selection().Range().Start
	e.finder.Replace(text)
	if strings.Contains(text, "\n") {
		e.highlightAll()
		return
	}
	e.highlightLine(start)
}

// ReplaceAll replaces every instance with text and returns how many were
// replaced.
func (e *Editor) ReplaceAll(text string) int {
	e.goal = -1
	n := e.finder.ReplaceAll(text)
	if n > 0 {
		e.highlightAll()
	}
	return n
}

// CloseFind ends the find session and clears its highlighting.
func (e *Editor) CloseFind() {
	e.finder.Close()
}
