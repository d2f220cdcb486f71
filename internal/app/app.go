package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/boothium/internal/config"
	"github.com/dshills/boothium/internal/config/watcher"
	"github.com/dshills/boothium/internal/editor"
	"github.com/dshills/boothium/internal/find"
	"github.com/dshills/boothium/internal/plugin/lua"
	"github.com/dshills/boothium/internal/renderer/backend"
	"github.com/dshills/boothium/internal/renderer/highlight"
	"github.com/dshills/boothium/internal/renderer/view"
)

// Application hosts one editor on a backend.
type Application struct {
	opts       Options
	configPath string

	backend backend.Backend
	logger  *Logger
	editor  *editor.Editor
	catalog *lua.Catalog
	view    *view.View
	status  *view.StatusLine
	watcher *watcher.Watcher
	metrics *Metrics

	prompt      *prompt
	lastFind    string
	lastReplace string
	quitArmed   bool

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// Path is the file to edit. It need not exist yet; an empty path
	// edits an unnamed buffer.
	Path string

	// ConfigPath is the settings file. Empty means config.DefaultPath().
	ConfigPath string

	// LoadOptions are passed to every config.Load.
	LoadOptions []config.Option

	// Language overrides the language detected from Path.
	Language string

	// LanguageDir holds the Lua language scripts. Empty means the
	// "languages" directory next to the settings file.
	LanguageDir string

	// LogLevel overrides the logLevel setting.
	LogLevel string

	// WatchConfig reloads the settings when the settings file changes.
	WatchConfig bool

	// Backend is the terminal. Required.
	Backend backend.Backend

	// Logger receives diagnostics. Defaults to NullLogger.
	Logger *Logger
}

// New loads the settings, the language scripts and the file, and creates
// the editor. Configuration errors are returned as *ComponentError and a
// file that cannot be read as *OperationError.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, &ComponentError{Component: "backend", Err: errors.New("no backend")}
	}
	app := &Application{
		opts:       opts,
		configPath: opts.ConfigPath,
		backend:    opts.Backend,
		logger:     opts.Logger,
		view:       view.New(0, 0, 0, 0),
		status:     view.NewStatusLine(),
		metrics:    NewMetrics(),
	}
	if app.logger == nil {
		app.logger = NullLogger
	}
	if app.configPath == "" {
		app.configPath = config.DefaultPath()
	}

	settings, err := config.Load(app.configPath, opts.LoadOptions...)
	if err != nil {
		return nil, &ComponentError{Component: "config", Action: "load", Err: err}
	}
	app.applyLogLevel(settings)
	app.logger.Info("settings loaded from %s", app.configPath)

	app.catalog = lua.NewCatalog()
	dir := opts.LanguageDir
	if dir == "" {
		dir = DefaultLanguageDir(app.configPath)
	}
	if err := app.catalog.LoadDir(dir); err != nil {
		app.logger.WithComponent("languages").Warn("%v", err)
		app.status.SetMessage("language scripts: "+err.Error(), view.MessageError)
	}

	text, err := readFile(opts.Path)
	if err != nil {
		return nil, err
	}

	lang, def := ResolveLanguage(app.catalog, opts.Path, opts.Language)
	id := uuid.New()
	edOpts := []editor.Option{
		editor.WithID(id),
		editor.WithLogger(app.logger.WithField("editor", id)),
		editor.WithNotifier(find.NotifierFunc(func(msg string) {
			app.status.SetMessage(msg, view.MessageWarning)
		})),
	}
	if def != nil {
		edOpts = append(edOpts, editor.WithDefinition(*def))
	}
	app.editor, err = editor.New(text, lang, settings, edOpts...)
	if err != nil {
		return nil, &ComponentError{Component: "editor", Action: "create", Err: err}
	}
	return app, nil
}

// DefaultLanguageDir returns the Lua language script directory that goes
// with a settings file.
func DefaultLanguageDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "languages")
}

// readFile returns the contents of path. A missing file or an empty path
// reads as empty.
func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &OperationError{Op: "open", Target: path, Err: err}
	}
	return string(data), nil
}

// ResolveLanguage picks the language of a file: the name, when given,
// else the file extension. Script-defined languages take precedence over
// the built-in ones. A non-nil definition means a script-defined language.
func ResolveLanguage(catalog *lua.Catalog, path, name string) (highlight.Language, *highlight.Definition) {
	if name != "" {
		if catalog != nil {
			if def, ok := catalog.Lookup(name); ok {
				return highlight.LanguageUnknown, &def
			}
		}
		return highlight.ParseLanguage(name), nil
	}
	if catalog != nil {
		if def, ok := catalog.ForPath(path); ok {
			return highlight.LanguageUnknown, &def
		}
	}
	return highlight.LanguageForPath(path), nil
}

// Editor returns the hosted editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Metrics returns the event loop timings.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Catalog returns the loaded script-defined languages.
func (app *Application) Catalog() *lua.Catalog {
	return app.catalog
}

// Run initializes the backend and runs the event loop until quit or the
// backend closes. A panic inside the loop is returned as a
// *RecoveredPanicError after the terminal has been restored.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &ComponentError{Component: "backend", Action: "init", Err: err}
	}
	defer app.backend.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	if app.opts.WatchConfig {
		app.startWatcher()
		defer app.stopWatcher()
	}

	app.resize(app.backend.Size())
	app.render()
	return app.eventLoop()
}

// Save writes the buffer to its file, keeping the file mode of an
// existing file.
func (app *Application) Save() error {
	if app.opts.Path == "" {
		return ErrNoFilePath
	}
	return app.writeFile(app.opts.Path)
}

// SaveAs writes the document to path, replacing any file there, and makes
// path the file being edited.
func (app *Application) SaveAs(path string) error {
	if path == "" {
		return ErrNoFilePath
	}
	if err := app.writeFile(path); err != nil {
		return err
	}
	app.opts.Path = path
	return nil
}

func (app *Application) writeFile(path string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(app.editor.Text()), mode); err != nil {
		return &OperationError{Op: "save", Target: path, Err: err}
	}
	app.editor.MarkSaved()
	app.logger.Info("saved %s", path)
	return nil
}

// applyLogLevel sets the log level from the settings unless it was given
// explicitly.
func (app *Application) applyLogLevel(s config.Settings) {
	level := s.LogLevel
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	app.logger.SetLevel(ParseLogLevel(level))
}

func (app *Application) resize(width, height int) {
	app.view.SetBounds(0, 0, width, max(0, height-1))
}

func (app *Application) render() {
	width, height := app.backend.Size()
	if height <= 0 || width <= 0 {
		return
	}
	start := time.Now()
	defer func() { app.metrics.RecordRender(time.Since(start)) }()

	top := app.editor.Scroll(app.view.Height())
	app.view.Draw(app.backend, app.editor.Document(), top, app.editor.CursorPoint(), app.editor.Settings().TabWidth)

	name := ""
	if app.opts.Path != "" {
		name = filepath.Base(app.opts.Path)
	}
	cur := app.editor.CursorPoint()
	app.status.SetFile(name, app.editor.Modified())
	app.status.SetLanguage(app.editor.Language())
	app.status.SetPosition(cur.Line, cur.Column)
	app.status.SetMatches(matchCounter(app.editor.Finder()))
	app.status.Render(app.backend, height-1, width)

	app.backend.Show()
}

// matchCounter formats the selected instance rank and the instance count
// of an active search, e.g. "2/5".
func matchCounter(f *find.Engine) string {
	if f == nil || f.State() != find.StateFound || f.Len() == 0 {
		return ""
	}
	if cur, ok := f.Current(); ok {
		return fmt.Sprintf("%d/%d", cur+1, f.Len())
	}
	return fmt.Sprintf("-/%d", f.Len())
}
