package watcher

import (
	"github.com/dshills/boothium/internal/config"
)

// ReloadFunc receives the settings read after a change. On a load error
// settings holds the defaults and err is set; the caller decides whether
// to keep its current settings.
type ReloadFunc func(settings config.Settings, err error)

// WatchSettings watches the settings file at path and calls fn with the
// reloaded settings after every settled change. A removed file reloads as
// the defaults. The returned watcher is running; Stop releases it.
func WatchSettings(path string, fn ReloadFunc, loadOpts []config.Option, opts ...Option) (*Watcher, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.OnChange(func(Event) {
		fn(config.Load(path, loadOpts...))
	})
	w.Start()
	return w, nil
}
