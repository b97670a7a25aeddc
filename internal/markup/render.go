package markup

import (
	"html"
	"strings"
)

// LineClass is the class attribute written for lines that carry none.
const LineClass = "line"

// Render serializes the tree as HTML-like markup: a div per line, a span per
// styled span, <br> for placeholders. Text is escaped, so the characters
// '<', '>', '&', '\'' and '"' never leak into the structure. Lines are
// separated by a newline.
func Render(t *Tree) string {
	var b strings.Builder
	for i, line := range t.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		if t.Kind(line) == KindLine {
			renderNode(&b, t, line)
			continue
		}
		// A bare node under the root is wrapped so every line renders the same.
		b.WriteString(`<div class="` + LineClass + `">`)
		renderNode(&b, t, line)
		b.WriteString("</div>")
	}
	return b.String()
}

func renderNode(b *strings.Builder, t *Tree, id NodeID) {
	n := &t.nodes[id]
	switch n.Kind {
	case KindText:
		b.WriteString(html.EscapeString(n.Text))
	case KindBreak:
		b.WriteString("<br>")
	case KindLine:
		class := n.Class
		if class == "" {
			class = LineClass
		}
		b.WriteString(`<div class="` + html.EscapeString(class) + `">`)
		renderChildren(b, t, n)
		b.WriteString("</div>")
	case KindSpan:
		if n.Class == "" {
			b.WriteString("<span>")
		} else {
			b.WriteString(`<span class="` + html.EscapeString(n.Class) + `">`)
		}
		renderChildren(b, t, n)
		b.WriteString("</span>")
	default:
		renderChildren(b, t, n)
	}
}

func renderChildren(b *strings.Builder, t *Tree, n *Node) {
	for _, c := range n.Children {
		renderNode(b, t, c)
	}
}
