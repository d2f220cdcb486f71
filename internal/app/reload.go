package app

import (
	"github.com/dshills/boothium/internal/config"
	"github.com/dshills/boothium/internal/config/watcher"
	"github.com/dshills/boothium/internal/renderer/backend"
	"github.com/dshills/boothium/internal/renderer/view"
)

// settingsReload carries reloaded settings from the watcher goroutine to
// the event loop.
type settingsReload struct {
	settings config.Settings
	err      error
}

func (app *Application) startWatcher() {
	log := app.logger.WithComponent("watcher")
	w, err := watcher.WatchSettings(app.configPath, func(s config.Settings, err error) {
		if perr := app.backend.PostEvent(backend.Event{
			Type: backend.EventInterrupt,
			Data: settingsReload{settings: s, err: err},
		}); perr != nil {
			log.Warn("settings reload lost: %v", perr)
		}
	}, app.opts.LoadOptions, watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		log.Warn("not watching %s: %v", app.configPath, err)
		return
	}
	app.watcher = w
	log.Debug("watching %s", app.configPath)
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Stop(); err != nil {
		app.logger.WithComponent("watcher").Warn("stop: %v", err)
	}
	app.watcher = nil
}

// applyReload hands reloaded settings to the editor. A settings file that
// fails to load or build keeps the current settings.
func (app *Application) applyReload(r settingsReload) {
	if r.err != nil {
		app.logger.Warn("reloading settings: %v", r.err)
		app.status.SetMessage("settings: "+r.err.Error(), view.MessageError)
		return
	}
	if r.settings.Equal(app.editor.Settings()) {
		return
	}
	if err := app.editor.UpdateSettings(r.settings); err != nil {
		app.logger.Warn("applying settings: %v", err)
		app.status.SetMessage("settings: "+err.Error(), view.MessageError)
		return
	}
	app.applyLogLevel(r.settings)
	app.metrics.RecordReload()
	app.logger.Info("settings reloaded")
	app.status.SetMessage("settings reloaded", view.MessageInfo)
}
