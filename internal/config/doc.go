// Package config provides the configuration system for richline.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← RICHLINE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← richline.toml or richline.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment variable loading
//   - layer: Layer management and merging
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("richline.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	tr := cfg.Transform()
//	fmt.Println(tr.Name)
//
// # Configuration Files
//
//	[editor]
//	initialText = "#todo buy milk"
//
//	[transform]
//	name = "classes"
//
//	[transform.classes]
//	"#" = "hashtag"
//
//	[theme.classes.hashtag]
//	foreground = "#61afef"
//	attributes = ["bold"]
//
// Section accessors never fail: a value of the wrong type is replaced by
// its default and the problem is kept for ConfigErrors.
package config
