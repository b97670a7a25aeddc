// Package renderer groups the display layer of richline.
//
// The renderer is split by concern:
//
//	┌─────────────────────────────────────────┐
//	│  highlight: token rules, class themes   │
//	├─────────────────────────────────────────┤
//	│  core: colors, attributes, cells        │
//	├─────────────────────────────────────────┤
//	│  backend: terminal (tcell) │ null       │
//	└─────────────────────────────────────────┘
//
// The terminal surface in package surface draws a rendered markup tree
// through a backend.Backend, resolving span classes with a
// highlight.Theme.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	term := surface.NewTerminal(b, highlight.DefaultTheme(), log)
//	term.Draw()
package renderer
