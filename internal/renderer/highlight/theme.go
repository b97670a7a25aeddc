package highlight

import (
	"strings"

	"github.com/dshills/richline/internal/renderer/core"
)

// Theme maps style classes to terminal styles. Classes are span class
// names: token scopes such as "keyword.control" or transform classes such
// as "hashtag".
type Theme struct {
	Name string

	// Base is the style of unstyled text.
	Base core.Style

	// Classes maps a class to the style layered over Base.
	Classes map[string]core.Style
}

// StyleFor returns the style for class. A dotted class with no entry falls
// back to its parent scope, then to Base.
func (t *Theme) StyleFor(class string) core.Style {
	for class != "" {
		if s, ok := t.Classes[class]; ok {
			return t.Base.Merge(s)
		}
		i := strings.LastIndexByte(class, '.')
		if i < 0 {
			break
		}
		class = class[:i]
	}
	return t.Base
}

// Set assigns the style for class.
func (t *Theme) Set(class string, s core.Style) {
	if t.Classes == nil {
		t.Classes = make(map[string]core.Style)
	}
	t.Classes[class] = s
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	fg := func(r, g, b uint8) core.Style {
		return core.DefaultStyle().WithForeground(core.ColorFromRGB(r, g, b))
	}
	return &Theme{
		Name: "default",
		Base: core.DefaultStyle(),
		Classes: map[string]core.Style{
			"hashtag":  fg(0x61, 0xAF, 0xEF).WithAttributes(core.AttrBold),
			"asterisk": fg(0xE5, 0xC0, 0x7B).WithAttributes(core.AttrBold),
			"hyphen":   fg(0x98, 0xC3, 0x79),

			"comment":          fg(0x7F, 0x84, 0x8E).WithAttributes(core.AttrItalic),
			"string":           fg(0x98, 0xC3, 0x79),
			"number":           fg(0xD1, 0x9A, 0x66),
			"keyword":          fg(0xC6, 0x78, 0xDD),
			"constant":         fg(0xD1, 0x9A, 0x66),
			"type":             fg(0xE5, 0xC0, 0x7B),
			"function":         fg(0x61, 0xAF, 0xEF),
			"markup.heading":   fg(0xE0, 0x6C, 0x75).WithAttributes(core.AttrBold),
			"markup.bold":      core.DefaultStyle().WithAttributes(core.AttrBold),
			"markup.italic":    core.DefaultStyle().WithAttributes(core.AttrItalic),
			"markup.strike":    core.DefaultStyle().WithAttributes(core.AttrStrikethrough),
			"markup.code":      fg(0x56, 0xB6, 0xC2),
			"markup.quote":     fg(0x7F, 0x84, 0x8E).WithAttributes(core.AttrItalic),
			"markup.list":      fg(0xE5, 0xC0, 0x7B),
			"markup.link":      fg(0x61, 0xAF, 0xEF).WithAttributes(core.AttrUnderline),
			"tag":              fg(0x61, 0xAF, 0xEF).WithAttributes(core.AttrBold),
			"mention":          fg(0xC6, 0x78, 0xDD),
			"keyword.control":  fg(0xC6, 0x78, 0xDD).WithAttributes(core.AttrBold),
			"function.builtin": fg(0x56, 0xB6, 0xC2),
		},
	}
}
