package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richline/internal/config"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/renderer/core"
	"github.com/dshills/richline/internal/renderer/highlight"
	"github.com/dshills/richline/internal/transform"
)

func TestBuildTransform(t *testing.T) {
	script := filepath.Join(t.TempDir(), "upper.lua")
	writeFile(t, script, `
function transform(line)
  return {{text = line, class = "all"}}
end
`)

	tests := []struct {
		name    string
		cfg     config.TransformConfig
		text    string
		want    string
		wantErr error
	}{
		{
			name: "plain",
			cfg:  config.TransformConfig{Name: "plain"},
			text: "a#b",
			want: `<div class="line">a#b</div>`,
		},
		{
			name: "default classes",
			cfg:  config.TransformConfig{Name: "classes"},
			text: "-x",
			want: `<div class="line"><span class="hyphen">-</span>x</div>`,
		},
		{
			name: "configured classes",
			cfg:  config.TransformConfig{Name: "classes", Classes: map[string]string{"@": "mention"}},
			text: "@a#",
			want: `<div class="line"><span class="mention">@</span>a#</div>`,
		},
		{
			name: "lua",
			cfg:  config.TransformConfig{Name: "lua", Script: script},
			text: "ab",
			want: `<div class="line"><span class="all">ab</span></div>`,
		},
		{
			name:    "lua without script",
			cfg:     config.TransformConfig{Name: "lua"},
			wantErr: ErrNoScript,
		},
		{
			name:    "unknown language",
			cfg:     config.TransformConfig{Name: "highlight", Language: "cobol"},
			wantErr: ErrUnknownLanguage,
		},
		{
			name:    "unknown transform",
			cfg:     config.TransformConfig{Name: "sparkle"},
			wantErr: ErrUnknownTransform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := buildTransform(tt.cfg, "", logging.NullLogger)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("buildTransform() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildTransform() failed: %v", err)
			}
			defer closeTransform(tr)

			tree, err := tr.Transform(tt.text)
			if err != nil {
				t.Fatalf("Transform(%q) failed: %v", tt.text, err)
			}
			if got := markup.Render(tree); got != tt.want {
				t.Errorf("Transform(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildTransformHighlight(t *testing.T) {
	tests := []struct {
		name     string
		language string
		file     string
		want     string
	}{
		{"configured language", "go", "", "go"},
		{"language wins over file", "markdown", "main.go", "markdown"},
		{"from file extension", "", "notes/todo.md", "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := buildTransform(config.TransformConfig{Name: "highlight", Language: tt.language}, tt.file, logging.NullLogger)
			if err != nil {
				t.Fatalf("buildTransform() failed: %v", err)
			}
			h, ok := tr.(*transform.Highlight)
			if !ok {
				t.Fatalf("transform = %T, want *transform.Highlight", tr)
			}
			if h.Language() != tt.want {
				t.Errorf("Language() = %q, want %q", h.Language(), tt.want)
			}
			tree, err := tr.Transform("func f() {}")
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if tree.Text() != "func f() {}" {
				t.Errorf("Text() = %q", tree.Text())
			}
		})
	}
}

func TestBuildTransformUnknownLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		file     string
		wantMsg  string
	}{
		{"unknown language", "cobol", "", `"cobol"`},
		{"unknown extension", "", "report.cob", `".cob" extension`},
		{"no language or file", "", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTransform(config.TransformConfig{Name: "highlight", Language: tt.language}, tt.file, logging.NullLogger)
			if !errors.Is(err, ErrUnknownLanguage) {
				t.Fatalf("buildTransform() error = %v, want ErrUnknownLanguage", err)
			}
			msg := err.Error()
			if !strings.Contains(msg, tt.wantMsg) || !strings.Contains(msg, "known: go, markdown, notes") {
				t.Errorf("error message = %q", msg)
			}
		})
	}
}

func TestBuildTheme(t *testing.T) {
	theme, err := buildTheme(config.ThemeConfig{
		Name:       "default",
		Foreground: "#ffffff",
		Background: "000",
		Classes: map[string]config.StyleConfig{
			"hashtag": {Foreground: "#ff0000", Attributes: []string{"underline"}},
			"mention": {Background: "#00ff00"},
		},
	})
	if err != nil {
		t.Fatalf("buildTheme() failed: %v", err)
	}

	base := core.DefaultStyle().
		WithForeground(core.ColorFromRGB(0xff, 0xff, 0xff)).
		WithBackground(core.ColorFromRGB(0, 0, 0))
	if diff := cmp.Diff(base, theme.Base); diff != "" {
		t.Errorf("base style mismatch (-want +got):\n%s", diff)
	}

	wantHashtag := base.
		WithForeground(core.ColorFromRGB(0xff, 0, 0)).
		WithAttributes(core.AttrUnderline)
	if diff := cmp.Diff(wantHashtag, theme.StyleFor("hashtag")); diff != "" {
		t.Errorf("hashtag style mismatch (-want +got):\n%s", diff)
	}

	wantMention := base.WithBackground(core.ColorFromRGB(0, 0xff, 0))
	if diff := cmp.Diff(wantMention, theme.StyleFor("mention")); diff != "" {
		t.Errorf("mention style mismatch (-want +got):\n%s", diff)
	}

	defaults := highlight.DefaultTheme()
	if diff := cmp.Diff(base.Merge(defaults.Classes["asterisk"]), theme.StyleFor("asterisk")); diff != "" {
		t.Errorf("built-in class should survive (-want +got):\n%s", diff)
	}
}

func TestBuildThemeErrors(t *testing.T) {
	theme, err := buildTheme(config.ThemeConfig{
		Name:       "solarized",
		Foreground: "nope",
		Classes: map[string]config.StyleConfig{
			"bad":  {Attributes: []string{"sparkly"}},
			"good": {Foreground: "#010203"},
		},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("error %v should include the unknown theme name", err)
	}

	var list *ErrorList
	if !errors.As(err, &list) || list.Len() != 3 {
		t.Fatalf("expected 3 collected errors, got %v", err)
	}

	if diff := cmp.Diff(core.DefaultStyle(), theme.Base); diff != "" {
		t.Errorf("invalid base should keep the default (-want +got):\n%s", diff)
	}
	if got := theme.StyleFor("good").Foreground; got != core.ColorFromRGB(1, 2, 3) {
		t.Errorf("good class foreground = %v", got)
	}
	if _, ok := theme.Classes["bad"]; ok {
		t.Error("invalid class should be skipped")
	}
}
