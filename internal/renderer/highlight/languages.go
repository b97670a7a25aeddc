package highlight

// GoHighlighter returns a highlighter for Go.
func GoHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("go", []string{".go"})

	h.AddMultiLine("/*", "*/", TokenCommentBlock, LexerStateBlockComment)
	h.AddMultiLine("`", "`", TokenStringRaw, LexerStateRawString)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TokenNumber)
	h.AddRule(`\b\d[\d_]*\.?\d*(?:[eE][+-]?\d+)?\b`, TokenNumber)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select")
	h.AddKeywords(TokenKeywordDeclaration,
		"func", "var", "const", "type", "struct", "interface", "map", "chan")
	h.AddKeywords(TokenKeyword,
		"package", "import", "defer", "go")
	h.AddKeywords(TokenConstant,
		"true", "false", "nil", "iota")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	h.AddKeywords(TokenFunctionBuiltin,
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "print", "println", "min", "max", "clear")

	return h
}

// MarkdownHighlighter returns a highlighter for Markdown.
func MarkdownHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("markdown", []string{".md", ".markdown"})

	h.AddMultiLine("```", "```", TokenMarkupCode, LexerStateFence)

	h.AddRule(`^#{1,6}\s+.*$`, TokenMarkupHeading)
	h.AddRule(`^>\s+.*$`, TokenMarkupQuote)
	h.AddRule(`^\s*(?:[-*+]|\d+\.)\s+`, TokenMarkupList)
	h.AddRule("`[^`]+`", TokenMarkupCode)
	h.AddRule(`\*\*[^*]+\*\*`, TokenMarkupBold)
	h.AddRule(`__[^_]+__`, TokenMarkupBold)
	h.AddRule(`\*[^*]+\*`, TokenMarkupItalic)
	h.AddRule(`_[^_]+_`, TokenMarkupItalic)
	h.AddRule(`~~[^~]+~~`, TokenMarkupStrike)
	h.AddRule(`\[[^\]]+\]\([^)]+\)`, TokenMarkupLink)

	return h
}

// NotesHighlighter returns a highlighter for free-form notes: hashtags,
// mentions, bullets and emphasis.
func NotesHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("notes", []string{".txt", ".note"})

	h.AddRule(`^\s*[-*]\s`, TokenMarkupList)
	h.AddRule(`(?:^|\B)#[\p{L}\p{N}_-]+`, TokenTag)
	h.AddRule(`(?:^|\B)@[\p{L}\p{N}_.-]+`, TokenMention)
	h.AddRule(`\*[^*\s][^*]*\*`, TokenMarkupBold)
	h.AddRule(`~~[^~]+~~`, TokenMarkupStrike)

	return h
}

// Registry looks highlighters up by language or file extension.
type Registry struct {
	byLanguage  map[string]Highlighter
	byExtension map[string]Highlighter
	order       []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
	}
}

// Register adds h, replacing any highlighter of the same language.
func (r *Registry) Register(h Highlighter) {
	if _, exists := r.byLanguage[h.Language()]; !exists {
		r.order = append(r.order, h.Language())
	}
	r.byLanguage[h.Language()] = h
	for _, ext := range h.FileExtensions() {
		r.byExtension[ext] = h
	}
}

// GetByLanguage returns the highlighter registered for language.
func (r *Registry) GetByLanguage(language string) (Highlighter, bool) {
	h, ok := r.byLanguage[language]
	return h, ok
}

// GetByExtension returns the highlighter for a file extension such as ".go".
func (r *Registry) GetByExtension(ext string) (Highlighter, bool) {
	h, ok := r.byExtension[ext]
	return h, ok
}

// Languages returns registered languages in registration order.
func (r *Registry) Languages() []string {
	return append([]string(nil), r.order...)
}

// DefaultRegistry returns a registry with the built-in highlighters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(GoHighlighter())
	r.Register(MarkdownHighlighter())
	r.Register(NotesHighlighter())
	return r
}
