// Package layer holds configuration layers and merges them by priority.
//
// Higher priority layers override lower ones. Maps are merged key by key;
// any other value replaces the one below it.
package layer

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin is the built-in defaults.
	SourceBuiltin Source = iota
	// SourceFile is a configuration file.
	SourceFile
	// SourceEnv is environment variables.
	SourceEnv
	// SourceArgs is command-line flags.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Standard priorities, lowest first.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// DefaultPriority returns the priority layers from source get.
func DefaultPriority(source Source) int {
	switch source {
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

// Layer is a single configuration source.
type Layer struct {
	// Name identifies the layer. Adding a layer replaces one of the same name.
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where the layer was loaded from.
	Source Source

	// Path is the file path, for file layers.
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// New creates a layer at the source's default priority.
func New(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: DefaultPriority(source),
		Data:     data,
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}
