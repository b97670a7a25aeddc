package markup

import "testing"

func TestRender(t *testing.T) {
	hashtag, _ := hashtagTree()

	bare := New()
	bare.AddText(RootID, "x")

	classed := New()
	classed.AddText(classed.AddClassedLine("heading"), "Title")

	tests := []struct {
		name string
		tree *Tree
		want string
	}{
		{"empty buffer", PlainText(""), `<div class="line"><br></div>`},
		{"escaping", PlainText("<b> & 'q'"), `<div class="line">&lt;b&gt; &amp; &#39;q&#39;</div>`},
		{"lines", PlainText("a\n\nb"), "<div class=\"line\">a</div>\n<div class=\"line\"><br></div>\n<div class=\"line\">b</div>"},
		{"span", hashtag, `<div class="line">a<span class="hashtag">#</span>b</div>`},
		{"bare text", bare, `<div class="line">x</div>`},
		{"classed line", classed, `<div class="heading">Title</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tree); got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
