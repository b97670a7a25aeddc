package transform

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/richline/internal/markup"
)

// Validate checks that t renders text: at least one line, the same
// characters, and a total length of RuneCount(text) counting one per
// newline between lines.
func Validate(t *markup.Tree, text string) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrLengthMismatch)
	}
	lines := t.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("%w: tree has no lines", ErrLengthMismatch)
	}

	total := len(lines) - 1
	for _, line := range lines {
		total += t.TextLen(line)
	}
	if want := utf8.RuneCountInString(text); total != want {
		return fmt.Errorf("%w: tree length %d, text length %d", ErrLengthMismatch, total, want)
	}
	if got := t.Text(); got != text {
		return fmt.Errorf("%w: tree text %s", ErrLengthMismatch, quote(got))
	}
	return nil
}
