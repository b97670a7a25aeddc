package config

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dshills/richline/internal/config/layer"
	"github.com/dshills/richline/internal/config/loader"
)

// Layer names.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "environment"
	LayerArgs     = "arguments"
)

// Config provides layered access to settings.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager
	fs     loader.FileSystem
	path   string

	envPrefix string
	env       *loader.EnvLoader

	// configErrors keeps the first access error per path.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the configuration file. The format follows the extension.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system the configuration file is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.env == nil && c.envPrefix != "" {
		c.env = loader.NewEnvLoader(c.envPrefix)
	}
	c.layers.Add(layer.New(LayerDefaults, layer.SourceBuiltin, defaultConfig()))
	return c
}

// Load reads the configuration file and the environment.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path != "" {
		if err := c.loadFile(); err != nil {
			return err
		}
	}
	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if len(data) > 0 {
			c.layers.Add(layer.New(LayerEnv, layer.SourceEnv, data))
		}
	}
	c.configErrors = nil
	return nil
}

// Reload re-reads the configuration file and returns the setting paths
// whose effective value changed. On error the previous file layer is kept.
func (c *Config) Reload() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil, nil
	}
	before := c.layers.Merge()
	if err := c.loadFile(); err != nil {
		return nil, err
	}
	c.configErrors = nil
	return diffPaths(before, c.layers.Merge()), nil
}

// loadFile replaces the file layer. Caller holds c.mu.
func (c *Config) loadFile() error {
	l, err := loader.ForPath(c.fs, c.path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%s: %w", c.path, ErrFileNotFound)
	}
	fl := layer.New(LayerFile, layer.SourceFile, data)
	fl.Path = c.path
	c.layers.Add(fl)
	return nil
}

// Path returns the configuration file path, if any.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return layer.GetByPath(c.layers.Merge(), path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetDuration returns a duration at the given path. Strings are parsed
// with time.ParseDuration and bare integers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: "string"}
		}
		return d, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// GetStringMap returns a map of strings at the given path.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "map", Actual: typeName(v)}
	}
	result := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		result[k] = s
	}
	return result, nil
}

// Set sets a value in the command-line layer.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	args := c.layers.Get(LayerArgs)
	if args == nil {
		args = layer.New(LayerArgs, layer.SourceArgs, nil)
		c.layers.Add(args)
	}
	if !layer.SetByPath(args.Data, path, value) {
		return fmt.Errorf("%s: %w", path, ErrInvalidPath)
	}
	c.layers.Invalidate()
	return nil
}

// Layers returns the names of the loaded layers, lowest priority first.
func (c *Config) Layers() []string {
	return c.layers.Names()
}

// ConfigErrors returns the errors recorded by section accessors.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.configErrors)
}

// recordConfigError stores the first error seen for path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"initialText": "",
			"file":        "",
			"tabWidth":    4,
		},
		"transform": map[string]any{
			"name":     "plain",
			"language": "",
			"script":   "",
			"timeout":  "1s",
		},
		"theme": map[string]any{
			"name": "default",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"watch": map[string]any{
			"enabled":    true,
			"debounce":   "100ms",
			"bufferSize": 16,
		},
	}
}

// diffPaths returns the sorted leaf paths that differ between two maps.
func diffPaths(before, after map[string]any) []string {
	old, cur := flatten(before), flatten(after)
	var changed []string
	for path, v := range cur {
		if ov, ok := old[path]; !ok || !reflect.DeepEqual(ov, v) {
			changed = append(changed, path)
		}
	}
	for path := range old {
		if _, ok := cur[path]; !ok {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return slices.Compact(changed)
}

func flatten(m map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if nested, ok := v.(map[string]any); ok {
				walk(key, nested)
				continue
			}
			out[key] = v
		}
	}
	walk("", m)
	return out
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	case time.Duration:
		return "duration"
	default:
		return "unknown"
	}
}
