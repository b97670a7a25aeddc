package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/richline/internal/config"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/plugin/lua"
	"github.com/dshills/richline/internal/renderer/core"
	"github.com/dshills/richline/internal/renderer/highlight"
	"github.com/dshills/richline/internal/transform"
)

// buildTransform creates the transform selected by cfg. Without a
// configured language the highlight transform picks one from the
// extension of file.
func buildTransform(cfg config.TransformConfig, file string, log *logging.Logger) (transform.Transform, error) {
	switch cfg.Name {
	case "", "plain":
		return transform.Plain, nil

	case "classes":
		var classes map[rune]string
		if len(cfg.Classes) > 0 {
			classes = make(map[rune]string, len(cfg.Classes))
			// config.Transform drops keys that are not a single rune.
			for ch, class := range cfg.Classes {
				r, _ := utf8.DecodeRuneInString(ch)
				classes[r] = class
			}
		}
		return transform.NewClasses(classes), nil

	case "highlight":
		reg := highlight.DefaultRegistry()
		known := strings.Join(reg.Languages(), ", ")
		if cfg.Language == "" && file != "" {
			ext := filepath.Ext(file)
			h, ok := reg.GetByExtension(ext)
			if !ok {
				return nil, fmt.Errorf("%w: no language for %q extension (known: %s)", ErrUnknownLanguage, ext, known)
			}
			return transform.NewHighlight(h), nil
		}
		h, ok := reg.GetByLanguage(cfg.Language)
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownLanguage, cfg.Language, known)
		}
		return transform.NewHighlight(h), nil

	case "lua":
		if cfg.Script == "" {
			return nil, ErrNoScript
		}
		return transform.LoadLua(cfg.Script,
			lua.WithExecutionTimeout(cfg.Timeout),
			lua.WithLogger(log.WithComponent("lua")),
		)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, cfg.Name)
}

// closeTransform releases resources held by t.
func closeTransform(t transform.Transform) {
	if c, ok := t.(interface{ Close() }); ok {
		c.Close()
	}
}

// buildTheme layers cfg over the built-in theme. Invalid entries are
// skipped and reported together.
func buildTheme(cfg config.ThemeConfig) (*highlight.Theme, error) {
	theme := highlight.DefaultTheme()
	errs := NewErrorList()

	if cfg.Name != "" && cfg.Name != theme.Name {
		errs.Add(fmt.Errorf("theme %q: %w", cfg.Name, config.ErrInvalidValue))
	}

	base, err := parseStyle(theme.Base, config.StyleConfig{
		Foreground: cfg.Foreground,
		Background: cfg.Background,
	})
	if err != nil {
		errs.Add(fmt.Errorf("theme base: %w", err))
	} else {
		theme.Base = base
	}

	for class, sc := range cfg.Classes {
		s, err := parseStyle(core.DefaultStyle(), sc)
		if err != nil {
			errs.Add(fmt.Errorf("theme class %q: %w", class, err))
			continue
		}
		theme.Set(class, s)
	}

	return theme, errs.AsError()
}

// parseStyle applies the colors and attributes of sc to s.
func parseStyle(s core.Style, sc config.StyleConfig) (core.Style, error) {
	if sc.Foreground != "" {
		c, err := core.ColorFromHex(sc.Foreground)
		if err != nil {
			return s, err
		}
		s = s.WithForeground(c)
	}
	if sc.Background != "" {
		c, err := core.ColorFromHex(sc.Background)
		if err != nil {
			return s, err
		}
		s = s.WithBackground(c)
	}
	if len(sc.Attributes) > 0 {
		attrs, err := core.ParseAttributes(sc.Attributes)
		if err != nil {
			return s, err
		}
		s = s.WithAttributes(attrs)
	}
	return s, nil
}
