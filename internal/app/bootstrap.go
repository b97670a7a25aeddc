package app

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/richline/internal/config"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/transform"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 5),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogging,
		b.initBuffer,
		b.initTransform,
		b.initTheme,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}

	b.app.reportConfigErrors()
	b.app.log.Debug("initialized %s", strings.Join(b.initOrder, ", "))
	return nil
}

// initConfig loads the configuration file, environment and overrides.
func (b *bootstrapper) initConfig() error {
	var configOpts []config.Option
	if b.opts.ConfigPath != "" {
		configOpts = append(configOpts, config.WithFile(b.opts.ConfigPath))
		if abs, err := filepath.Abs(b.opts.ConfigPath); err == nil {
			b.app.configPath = abs
		}
	}
	cfg := config.New(configOpts...)

	keys := make([]string, 0, len(b.opts.Settings))
	for k := range b.opts.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.Set(k, b.opts.Settings[k]); err != nil {
			return NewComponentError("config", "set", err)
		}
	}

	if err := cfg.Load(context.Background()); err != nil {
		return NewComponentError("config", "load", err)
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogging opens the log file named by the logging settings. Without a
// file nothing is logged; the terminal owns stderr while the editor runs.
func (b *bootstrapper) initLogging() error {
	lc := b.app.config.Logging()

	switch {
	case b.opts.Logger != nil:
		b.app.log = b.opts.Logger
	case lc.File == "":
		b.app.log = logging.NullLogger
	default:
		f, err := logging.OpenFile(lc.File)
		if err != nil {
			return NewComponentError("logging", "open", err)
		}
		b.app.logFile = f

		cfg := logging.DefaultConfig()
		cfg.Output = f
		b.app.log = logging.New(cfg)
		level, ok := logging.ParseLevel(lc.Level)
		if !ok {
			b.app.log.Warn("unknown log level %q, using %s", lc.Level, level)
		}
		b.app.log.SetLevel(level)
	}

	b.initOrder = append(b.initOrder, "logging")
	return nil
}

// initBuffer resolves the initial text. A file named by editor.file
// replaces editor.initialText and is never written.
func (b *bootstrapper) initBuffer() error {
	ec := b.app.config.Editor()
	b.app.initialText = ec.InitialText
	b.app.tabWidth = ec.TabWidth

	if ec.File != "" {
		data, err := os.ReadFile(ec.File)
		if err != nil {
			return NewComponentError("editor", "read initial text", err)
		}
		b.app.initialText = strings.ReplaceAll(string(data), "\r\n", "\n")
	}

	b.initOrder = append(b.initOrder, "buffer")
	return nil
}

// initTransform builds the configured transform, falling back to plain
// text when it cannot be built.
func (b *bootstrapper) initTransform() error {
	tc := b.app.config.Transform()
	t, err := buildTransform(tc, b.app.config.Editor().File, b.app.log)
	if err != nil {
		b.app.log.Error("transform %q: %v; using plain", tc.Name, err)
		t = transform.Plain
	}
	b.app.transform = t

	b.initOrder = append(b.initOrder, "transform")
	return nil
}

// initTheme builds the terminal theme. Invalid entries are logged and
// skipped.
func (b *bootstrapper) initTheme() error {
	theme, err := buildTheme(b.app.config.Theme())
	if err != nil {
		b.app.log.Warn("theme: %v", err)
	}
	b.app.theme = theme

	b.initOrder = append(b.initOrder, "theme")
	return nil
}

// cleanup releases components initialized before a failure.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "transform":
			closeTransform(b.app.transform)
		case "logging":
			if b.app.logFile != nil {
				_ = b.app.logFile.Close()
				b.app.logFile = nil
			}
		}
	}
}

// reportConfigErrors logs settings that were ignored because of a bad
// value.
func (app *Application) reportConfigErrors() {
	errs := app.config.ConfigErrors()
	paths := make([]string, 0, len(errs))
	for p := range errs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		app.log.Warn("config %s: %v", p, errs[p])
	}
}
