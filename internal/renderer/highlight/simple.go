package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule defines a highlighting rule.
type Rule struct {
	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// TokenType is the type to assign to matches.
	TokenType TokenType
}

type multiLineRule struct {
	start     string
	end       string
	tokenType TokenType
	state     LexerState
}

// SimpleHighlighter is a regex-based syntax highlighter. Multi-line
// constructs are matched first, then rules in the order added, then
// identifiers against the keyword table. Earlier matches win.
type SimpleHighlighter struct {
	language   string
	extensions []string
	rules      []Rule
	keywords   map[string]TokenType
	multiLine  []multiLineRule
}

// NewSimpleHighlighter creates a new simple highlighter.
func NewSimpleHighlighter(language string, extensions []string) *SimpleHighlighter {
	return &SimpleHighlighter{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]TokenType),
	}
}

// AddRule adds a highlighting rule. It panics if pattern does not compile.
func (h *SimpleHighlighter) AddRule(pattern string, tokenType TokenType) *SimpleHighlighter {
	h.rules = append(h.rules, Rule{
		Pattern:   regexp.MustCompile(pattern),
		TokenType: tokenType,
	})
	return h
}

// AddKeywords adds keywords with a specific token type.
func (h *SimpleHighlighter) AddKeywords(tokenType TokenType, keywords ...string) *SimpleHighlighter {
	for _, kw := range keywords {
		h.keywords[kw] = tokenType
	}
	return h
}

// AddMultiLine adds a construct that may span lines, such as a block
// comment.
func (h *SimpleHighlighter) AddMultiLine(start, end string, tokenType TokenType, state LexerState) *SimpleHighlighter {
	h.multiLine = append(h.multiLine, multiLineRule{
		start:     start,
		end:       end,
		tokenType: tokenType,
		state:     state,
	})
	return h
}

// Language returns the language name.
func (h *SimpleHighlighter) Language() string {
	return h.language
}

// FileExtensions returns the supported file extensions.
func (h *SimpleHighlighter) FileExtensions() []string {
	return h.extensions
}

// HighlightLine tokenizes a single line.
func (h *SimpleHighlighter) HighlightLine(line string, prev LexerState) ([]Token, LexerState) {
	spans, state := h.highlightBytes(line, prev)
	return toRuneColumns(line, spans), state
}

// byteSpan is a token measured in bytes.
type byteSpan struct {
	typ        TokenType
	start, end int
}

func (h *SimpleHighlighter) highlightBytes(line string, prev LexerState) ([]byteSpan, LexerState) {
	if prev == LexerStateNormal {
		return h.highlightNormal(line, 0)
	}

	rule, ok := h.ruleForState(prev)
	if !ok {
		return h.highlightNormal(line, 0)
	}
	idx := strings.Index(line, rule.end)
	if idx < 0 {
		if line == "" {
			return nil, prev
		}
		return []byteSpan{{rule.tokenType, 0, len(line)}}, prev
	}
	end := idx + len(rule.end)
	spans, state := h.highlightNormal(line, end)
	return append([]byteSpan{{rule.tokenType, 0, end}}, spans...), state
}

// highlightNormal highlights line[from:] in normal state.
func (h *SimpleHighlighter) highlightNormal(line string, from int) ([]byteSpan, LexerState) {
	var spans []byteSpan
	covered := make([]bool, len(line))
	for i := 0; i < from; i++ {
		covered[i] = true
	}
	state := LexerStateNormal

	for _, rule := range h.multiLine {
		rel := strings.Index(line[from:], rule.start)
		if rel < 0 {
			continue
		}
		idx := from + rel
		if isCovered(covered, idx, idx+len(rule.start)) {
			continue
		}
		rest := idx + len(rule.start)
		if endIdx := strings.Index(line[rest:], rule.end); endIdx >= 0 {
			end := rest + endIdx + len(rule.end)
			spans = append(spans, byteSpan{rule.tokenType, idx, end})
			markCovered(covered, idx, end)
			continue
		}
		spans = append(spans, byteSpan{rule.tokenType, idx, len(line)})
		markCovered(covered, idx, len(line))
		state = rule.state
	}

	for _, rule := range h.rules {
		for _, m := range rule.Pattern.FindAllStringIndex(line, -1) {
			start, end := m[0], m[1]
			if start < from || end <= start || isCovered(covered, start, end) {
				continue
			}
			spans = append(spans, byteSpan{rule.TokenType, start, end})
			markCovered(covered, start, end)
		}
	}

	spans = append(spans, h.findKeywords(line, covered)...)

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	return spans, state
}

// findKeywords scans uncovered identifiers and reports those in the keyword
// table.
func (h *SimpleHighlighter) findKeywords(line string, covered []bool) []byteSpan {
	var spans []byteSpan
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if covered[i] || !(unicode.IsLetter(r) || r == '_') {
			i += size
			continue
		}
		start := i
		for i < len(line) {
			r, size = utf8.DecodeRuneInString(line[i:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i += size
		}
		if isCovered(covered, start, i) {
			continue
		}
		if typ, ok := h.keywords[line[start:i]]; ok {
			spans = append(spans, byteSpan{typ, start, i})
			markCovered(covered, start, i)
		}
	}
	return spans
}

func (h *SimpleHighlighter) ruleForState(state LexerState) (multiLineRule, bool) {
	for _, rule := range h.multiLine {
		if rule.state == state {
			return rule, true
		}
	}
	return multiLineRule{}, false
}

func isCovered(covered []bool, start, end int) bool {
	for i := max(start, 0); i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := max(start, 0); i < end && i < len(covered); i++ {
		covered[i] = true
	}
}

// toRuneColumns converts byte spans over line into rune-column tokens.
func toRuneColumns(line string, spans []byteSpan) []Token {
	if len(spans) == 0 {
		return nil
	}
	col := make([]int, len(line)+1)
	n := 0
	for i := range line {
		col[i] = n
		n++
	}
	col[len(line)] = n
	// Fill interior bytes of multi-byte runes with the next rune column.
	for i := len(line) - 1; i >= 0; i-- {
		if !utf8.RuneStart(line[i]) {
			col[i] = col[i+1]
		}
	}

	tokens := make([]Token, 0, len(spans))
	for _, s := range spans {
		tokens = append(tokens, Token{Type: s.typ, Start: col[s.start], End: col[s.end]})
	}
	return tokens
}
