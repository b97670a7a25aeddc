package app

import (
	"path/filepath"
	"strings"

	"github.com/dshills/richline/internal/renderer/backend"
	"github.com/dshills/richline/internal/watcher"
)

// watchPaths returns the files whose changes trigger a reload.
func (app *Application) watchPaths() []string {
	var paths []string
	if app.configPath != "" {
		paths = append(paths, app.configPath)
	}
	tc := app.config.Transform()
	if tc.Name == "lua" && tc.Script != "" {
		if abs, err := filepath.Abs(tc.Script); err == nil {
			paths = append(paths, abs)
		}
	}
	return paths
}

// startWatcher watches the config file and Lua script when hot reload is
// enabled. Failures only disable hot reload.
func (app *Application) startWatcher() {
	wc := app.config.Watch()
	if !wc.Enabled {
		return
	}
	paths := app.watchPaths()
	if len(paths) == 0 {
		return
	}

	w, err := watcher.New(
		watcher.WithDebounce(wc.Debounce),
		watcher.WithBufferSize(wc.BufferSize),
	)
	if err != nil {
		app.log.Warn("hot reload disabled: %v", err)
		return
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			app.log.Warn("watch %s: %v", p, err)
		}
	}

	app.watcher = w
	go app.watchLoop(w, app.backend)
}

// stopWatcher closes the watcher started by startWatcher.
func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Close(); err != nil {
		app.log.Warn("close watcher: %v", err)
	}
	app.watcher = nil
}

// watchLoop hands file events to the event loop. It never touches the
// editor itself.
func (app *Application) watchLoop(w *watcher.Watcher, b backend.Backend) {
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			path := ev.Path
			app.log.Debug("file %s: %s", path, ev.Op)
			b.PostEvent(backend.Event{
				Type:     backend.EventInterrupt,
				Callback: func() { app.reload(path) },
			})

		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			app.log.Warn("watcher: %v", err)
		}
	}
}

// reload re-reads the config file when path is the config file, then
// rebuilds the transform and theme. A transform that fails to build leaves
// the current one in place.
func (app *Application) reload(path string) {
	if path == app.configPath {
		changed, err := app.config.Reload()
		if err != nil {
			app.log.Error("reload config: %v", err)
			app.metrics.RecordReload(false)
			return
		}
		if len(changed) > 0 {
			app.log.Info("config changed: %s", strings.Join(changed, ", "))
		}
	}

	theme, err := buildTheme(app.config.Theme())
	if err != nil {
		app.log.Warn("theme: %v", err)
	}
	app.theme = theme
	app.tabWidth = app.config.Editor().TabWidth
	if app.terminal != nil {
		app.terminal.SetTheme(theme)
		app.terminal.SetTabWidth(app.tabWidth)
	}

	tc := app.config.Transform()
	t, err := buildTransform(tc, app.config.Editor().File, app.log)
	app.reportConfigErrors()
	if err != nil {
		app.log.Error("reload transform %q: %v", tc.Name, err)
		app.metrics.RecordReload(false)
		return
	}

	old := app.transform
	app.transform = t
	if app.controller != nil {
		app.controller.SetTransform(t)
	}
	closeTransform(old)

	if app.watcher != nil {
		for _, p := range app.watchPaths() {
			if !app.watcher.IsWatching(p) {
				if err := app.watcher.Add(p); err != nil {
					app.log.Warn("watch %s: %v", p, err)
				}
			}
		}
	}

	app.log.Info("reloaded %s transform", tc.Name)
	app.metrics.RecordReload(true)
}
