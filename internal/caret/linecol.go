package caret

import "strings"

// LineCol converts a linear offset in text to a zero-based line and rune
// column. Offsets are clamped to the text.
func LineCol(text string, offset int) (line, col int) {
	if offset <= 0 {
		return 0, 0
	}
	for _, r := range text {
		if offset == 0 {
			break
		}
		offset--
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// OffsetOf converts a line and rune column to a linear offset in text. The
// line is clamped to the last line and the column to the line's length.
func OffsetOf(text string, line, col int) int {
	lines := strings.Split(text, "\n")
	if line < 0 {
		line = 0
	}
	if line >= len(lines) {
		line = len(lines) - 1
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	if col < 0 {
		col = 0
	}
	if n := len([]rune(lines[line])); col > n {
		col = n
	}
	return offset + col
}
