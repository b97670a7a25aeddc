// Package app provides the main application structure and coordination
// for richline. It wires configuration, the editor controller, the
// terminal surface and the file watcher together and runs the event loop.
package app

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/richline/internal/config"
	"github.com/dshills/richline/internal/editor"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/renderer/backend"
	"github.com/dshills/richline/internal/renderer/highlight"
	"github.com/dshills/richline/internal/surface"
	"github.com/dshills/richline/internal/transform"
	"github.com/dshills/richline/internal/watcher"
)

// Dump formats.
const (
	FormatMarkup = "markup"
	FormatJSON   = "json"
)

// Application is the central coordinator for all richline components.
// Everything except Shutdown must be called from the goroutine that
// calls Run.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config  *config.Config
	log     *logging.Logger
	logFile io.Closer
	metrics *Metrics

	// Settings resolved from config
	initialText string
	transform   transform.Transform
	theme       *highlight.Theme
	tabWidth    int
	configPath  string

	// Editor components, created by Run
	backend    backend.Backend
	terminal   *surface.Terminal
	controller *editor.Controller
	watcher    *watcher.Watcher

	// State
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty runs on built-in
	// defaults, the environment and Settings.
	ConfigPath string

	// Settings override configuration values by dotted path, the way
	// command-line flags do.
	Settings map[string]any

	// Logger replaces the logger built from the logging settings.
	Logger *logging.Logger

	// OnTextChange is called with the buffer after every completed render.
	OnTextChange func(text string)
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run mounts the editor on the backend and runs the event loop.
// Blocks until the user quits, returning ErrQuit, or Shutdown is called,
// returning nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		app.running.Store(false)
		return NewComponentError("backend", "run", ErrNoBackend)
	}

	if err := b.Init(); err != nil {
		app.running.Store(false)
		return NewComponentError("backend", "init", err)
	}
	defer func() {
		app.running.Store(false)
		b.Shutdown()
	}()

	app.mountEditor()

	app.startWatcher()
	defer app.stopWatcher()

	app.draw()
	return app.eventLoop()
}

// mountEditor creates the terminal surface and the controller driving it.
func (app *Application) mountEditor() {
	app.terminal = surface.NewTerminal(app.backend, app.theme, app.log)
	app.terminal.SetTabWidth(app.tabWidth)

	app.controller = editor.New(app.terminal,
		editor.WithInitialText(app.initialText),
		editor.WithTransform(app.transform),
		editor.WithTextChange(app.textChanged),
		editor.WithLogger(app.log),
	)
	app.terminal.Attach(app.controller)
	app.controller.Mount()
}

func (app *Application) textChanged(text string) {
	if app.opts.OnTextChange != nil {
		app.opts.OnTextChange(text)
	}
}

// draw redraws the terminal surface.
func (app *Application) draw() {
	timer := StartTimer()
	app.terminal.Draw()
	app.metrics.RecordDraw(timer.Elapsed())
}

// Dump renders the initial buffer with the configured transform and
// writes the tree to w as markup or JSON, without a terminal.
func (app *Application) Dump(w io.Writer, format string) error {
	mem := surface.NewMemory()
	c := editor.New(mem,
		editor.WithInitialText(app.initialText),
		editor.WithTransform(app.transform),
		editor.WithLogger(app.log),
	)
	c.Mount()

	switch format {
	case "", FormatMarkup:
		_, err := fmt.Fprintln(w, markup.Render(mem.Content()))
		return err
	case FormatJSON:
		data, err := markup.EncodeJSON(mem.Content())
		if err != nil {
			return NewComponentError("markup", "encode", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Shutdown stops the event loop. Safe to call from any goroutine and more
// than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Close stops the application and releases the transform and log file.
// Call it after Run has returned.
func (app *Application) Close() error {
	app.Shutdown()
	closeTransform(app.transform)
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Text returns the current buffer, or the initial text before Run.
func (app *Application) Text() string {
	if app.controller != nil {
		return app.controller.Text()
	}
	return app.initialText
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Controller returns the editor controller, nil before Run.
func (app *Application) Controller() *editor.Controller {
	return app.controller
}

// Terminal returns the terminal surface, nil before Run.
func (app *Application) Terminal() *surface.Terminal {
	return app.terminal
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
