package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/boothium/internal/find"
	"github.com/dshills/boothium/internal/renderer/backend"
	"github.com/dshills/boothium/internal/renderer/view"
)

// eventLoop handles backend events until quit. The editor is only ever
// touched from here; other goroutines post interrupts.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		start := time.Now()
		err := app.handleEvent(ev)
		app.metrics.RecordEvent(time.Since(start))
		if errors.Is(err, ErrQuit) {
			s := app.metrics.Snapshot()
			app.logger.Debug("%d events (avg %v, max %v), %d frames (avg %v, max %v)",
				s.EventCount, s.AvgEvent, s.MaxEvent, s.RenderCount, s.AvgRender, s.MaxRender)
			return nil
		}
		if err != nil {
			return err
		}
		app.render()
	}
}

func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case settingsReload:
			app.applyReload(data)
		case quitRequest:
			app.logger.Info("quit: %s", data.reason)
			return ErrQuit
		}
	case backend.EventClosed:
		return ErrQuit
	}
	return nil
}

func (app *Application) handleKey(ev backend.Event) error {
	if ev.Key != backend.KeyCtrlQ && ev.Key != backend.KeyCtrlC {
		app.quitArmed = false
	}
	if app.prompt != nil {
		app.handlePromptKey(ev)
		app.autosave()
		return nil
	}
	app.status.ClearMessage()
	if err := app.handleEditorKey(ev); err != nil {
		return err
	}
	app.autosave()
	return nil
}

func (app *Application) handleEditorKey(ev backend.Event) error {
	ed := app.editor
	switch ev.Key {
	case backend.KeyRune:
		ed.Type(ev.Rune)
	case backend.KeyEnter:
		ed.Newline()
	case backend.KeyTab:
		ed.Type('\t')
	case backend.KeyBackspace:
		ed.Backspace()
	case backend.KeyDelete:
		ed.Delete()

	case backend.KeyLeft:
		ed.MoveLeft()
	case backend.KeyRight:
		ed.MoveRight()
	case backend.KeyUp:
		ed.MoveUp()
	case backend.KeyDown:
		ed.MoveDown()
	case backend.KeyHome:
		ed.Home()
	case backend.KeyEnd:
		ed.End()
	case backend.KeyPageUp:
		for range max(1, app.view.Height()-1) {
			ed.MoveUp()
		}
	case backend.KeyPageDown:
		for range max(1, app.view.Height()-1) {
			ed.MoveDown()
		}

	case backend.KeyEscape:
		ed.CloseFind()
	case backend.KeyCtrlF:
		app.openPrompt(promptFind, app.lastFind)
	case backend.KeyCtrlN:
		ed.FindNext()
	case backend.KeyCtrlP:
		ed.FindPrevious()
	case backend.KeyCtrlR:
		app.openReplacePrompt(promptReplace)
	case backend.KeyCtrlA:
		app.openReplacePrompt(promptReplaceAll)

	case backend.KeyCtrlS:
		if ev.Mod.Has(backend.ModShift) || app.opts.Path == "" {
			app.openPrompt(promptSaveAs, app.opts.Path)
			break
		}
		app.save()
	case backend.KeyCtrlO:
		app.openPrompt(promptSaveAs, app.opts.Path)
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return app.quit()
	}
	return nil
}

func (app *Application) save() {
	if err := app.Save(); err != nil {
		app.logger.Warn("%v", err)
		app.status.SetMessage(err.Error(), view.MessageError)
		return
	}
	app.status.SetMessage(fmt.Sprintf("wrote %d lines", app.editor.LineCount()), view.MessageInfo)
}

// autosave writes unsaved changes when the autosave setting is on and the
// document has a file path.
func (app *Application) autosave() {
	if !app.editor.Settings().Autosave || !app.editor.Modified() || app.opts.Path == "" {
		return
	}
	if err := app.Save(); err != nil {
		app.logger.Warn("autosave: %v", err)
		app.status.SetMessage("autosave: "+err.Error(), view.MessageError)
	}
}

type quitRequest struct {
	reason string
}

// Quit asks the event loop to stop without saving. It is safe to call
// from any goroutine, e.g. a signal handler.
func (app *Application) Quit(reason string) {
	if err := app.backend.PostEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: quitRequest{reason: reason},
	}); err != nil {
		app.logger.Warn("quit (%s) lost: %v", reason, err)
	}
}

// quit returns ErrQuit, unless there are unsaved changes and this is the
// first quit key in a row.
func (app *Application) quit() error {
	if app.editor.Modified() && !app.quitArmed {
		app.quitArmed = true
		app.status.SetMessage("unsaved changes: press Ctrl+Q again to quit", view.MessageWarning)
		return nil
	}
	app.logger.Info("quit")
	return ErrQuit
}

type promptKind int

const (
	promptFind promptKind = iota
	promptReplace
	promptReplaceAll
	promptSaveAs
)

var promptLabels = [...]string{
	promptFind:       "Find",
	promptReplace:    "Replace with",
	promptReplaceAll: "Replace all with",
	promptSaveAs:     "Save as",
}

// prompt is a one-line input read on the status line.
type prompt struct {
	kind promptKind
	text []rune
}

func (app *Application) openPrompt(kind promptKind, initial string) {
	app.prompt = &prompt{kind: kind, text: []rune(initial)}
	app.status.SetPrompt(promptLabels[kind], initial)
}

func (app *Application) openReplacePrompt(kind promptKind) {
	if app.editor.Finder().State() != find.StateFound {
		app.status.SetMessage("nothing to replace: find first (Ctrl+F)", view.MessageInfo)
		return
	}
	app.openPrompt(kind, app.lastReplace)
}

func (app *Application) closePrompt() {
	app.prompt = nil
	app.status.ClearPrompt()
}

func (app *Application) handlePromptKey(ev backend.Event) {
	p := app.prompt
	switch ev.Key {
	case backend.KeyRune:
		p.text = append(p.text, ev.Rune)
	case backend.KeyBackspace:
		if len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
	case backend.KeyEscape:
		app.closePrompt()
		return
	case backend.KeyEnter:
		app.closePrompt()
		app.commitPrompt(p.kind, string(p.text))
		return
	default:
		return
	}
	app.status.SetPrompt(promptLabels[p.kind], string(p.text))
}

func (app *Application) commitPrompt(kind promptKind, text string) {
	switch kind {
	case promptFind:
		app.lastFind = text
		app.editor.Find(text)
	case promptReplace:
		app.lastReplace = text
		app.editor.Replace(text)
	case promptReplaceAll:
		app.lastReplace = text
		n := app.editor.ReplaceAll(text)
		app.status.SetMessage(fmt.Sprintf("replaced %d", n), view.MessageInfo)
	case promptSaveAs:
		if text == "" {
			return
		}
		if err := app.SaveAs(text); err != nil {
			app.logger.Warn("%v", err)
			app.status.SetMessage(err.Error(), view.MessageError)
			return
		}
		app.status.SetMessage(fmt.Sprintf("wrote %d lines to %s", app.editor.LineCount(), text), view.MessageInfo)
	}
}
