package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// TransformNames lists the accepted values of transform.name.
var TransformNames = []string{"plain", "classes", "highlight", "lua"}

// EditorConfig holds buffer settings.
type EditorConfig struct {
	// InitialText is the buffer shown at startup.
	InitialText string

	// File names a file whose content replaces InitialText. It is only read.
	File string

	// TabWidth is the distance between tab stops on screen.
	TabWidth int
}

// TransformConfig selects and configures the text transform.
type TransformConfig struct {
	// Name is one of TransformNames.
	Name string

	// Language is the highlighter language for the highlight transform.
	Language string

	// Script is the Lua file for the lua transform.
	Script string

	// Classes maps single characters to span classes for the classes
	// transform. Nil means the built-in set.
	Classes map[string]string

	// Timeout bounds one call into the Lua script.
	Timeout time.Duration
}

// StyleConfig describes the style of one class. Colors are hex strings.
type StyleConfig struct {
	Foreground string
	Background string
	Attributes []string
}

// ThemeConfig describes the terminal theme.
type ThemeConfig struct {
	// Name of the built-in theme to start from.
	Name string

	// Foreground and Background style unclassed text.
	Foreground string
	Background string

	// Classes override or add class styles.
	Classes map[string]StyleConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn", "error").
	Level string

	// File is the log file path (empty disables logging).
	File string
}

// WatchConfig controls hot reloading of the config file and Lua script.
type WatchConfig struct {
	Enabled  bool
	Debounce time.Duration

	// BufferSize is the capacity of the watcher's event channel.
	BufferSize int
}

// Editor returns the editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		InitialText: c.getStringOr("editor.initialText", ""),
		File:        c.getStringOr("editor.file", ""),
		TabWidth:    c.getIntOr("editor.tabWidth", 4),
	}
}

// Transform returns the transform settings. An unknown name falls back to
// "plain".
func (c *Config) Transform() TransformConfig {
	tc := TransformConfig{
		Name:     c.getStringOr("transform.name", "plain"),
		Language: c.getStringOr("transform.language", ""),
		Script:   c.getStringOr("transform.script", ""),
		Classes:  c.getStringMapOr("transform.classes", nil),
		Timeout:  c.getDurationOr("transform.timeout", time.Second),
	}
	if !slices.Contains(TransformNames, tc.Name) {
		c.recordConfigError("transform.name", fmt.Errorf("%w: transform %q", ErrInvalidValue, tc.Name))
		tc.Name = "plain"
	}
	for k := range tc.Classes {
		if len([]rune(k)) != 1 {
			c.recordConfigError("transform.classes."+k, fmt.Errorf("%w: class key %q is not one character", ErrInvalidValue, k))
			delete(tc.Classes, k)
		}
	}
	return tc
}

// Theme returns the theme settings.
func (c *Config) Theme() ThemeConfig {
	tc := ThemeConfig{
		Name:       c.getStringOr("theme.name", "default"),
		Foreground: c.getStringOr("theme.foreground", ""),
		Background: c.getStringOr("theme.background", ""),
	}

	v, ok := c.Get("theme.classes")
	if !ok {
		return tc
	}
	classes, ok := v.(map[string]any)
	if !ok {
		c.recordConfigError("theme.classes", &TypeError{Path: "theme.classes", Expected: "map", Actual: typeName(v)})
		return tc
	}
	tc.Classes = make(map[string]StyleConfig, len(classes))
	for name := range classes {
		base := "theme.classes." + name
		tc.Classes[name] = StyleConfig{
			Foreground: c.getStringOr(base+".foreground", ""),
			Background: c.getStringOr(base+".background", ""),
			Attributes: c.getStringSliceOr(base+".attributes", nil),
		}
	}
	return tc
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Watch returns the hot reload settings.
func (c *Config) Watch() WatchConfig {
	return WatchConfig{
		Enabled:    c.getBoolOr("watch.enabled", true),
		Debounce:   c.getDurationOr("watch.debounce", 100*time.Millisecond),
		BufferSize: c.getIntOr("watch.bufferSize", 16),
	}
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getStringSliceOr(path string, defaultValue []string) []string {
	v, err := c.GetStringSlice(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return slices.Clone(defaultValue)
	}
	return slices.Clone(v)
}

func (c *Config) getStringMapOr(path string, defaultValue map[string]string) map[string]string {
	v, err := c.GetStringMap(path)
	if err != nil {
		c.recordUnlessMissing(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) recordUnlessMissing(path string, err error) {
	if !errors.Is(err, ErrSettingNotFound) {
		c.recordConfigError(path, err)
	}
}
