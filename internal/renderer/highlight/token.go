// Package highlight provides regex-based syntax highlighting. Tokens are
// reported in rune columns so they line up with the editor's offsets.
package highlight

import "strings"

// TokenType represents the semantic type of a token.
type TokenType uint16

// Token types, named after TextMate scopes.
const (
	TokenNone TokenType = iota

	TokenComment
	TokenCommentLine
	TokenCommentBlock

	TokenString
	TokenStringRaw

	TokenNumber

	TokenKeyword
	TokenKeywordControl
	TokenKeywordDeclaration

	TokenConstant
	TokenTypeBuiltin
	TokenFunctionBuiltin
	TokenIdentifier

	TokenMarkupHeading
	TokenMarkupBold
	TokenMarkupItalic
	TokenMarkupStrike
	TokenMarkupCode
	TokenMarkupQuote
	TokenMarkupList
	TokenMarkupLink

	TokenTag
	TokenMention
)

var tokenTypeNames = []string{
	TokenNone: "none",

	TokenComment:      "comment",
	TokenCommentLine:  "comment.line",
	TokenCommentBlock: "comment.block",

	TokenString:    "string",
	TokenStringRaw: "string.raw",

	TokenNumber: "number",

	TokenKeyword:            "keyword",
	TokenKeywordControl:     "keyword.control",
	TokenKeywordDeclaration: "keyword.declaration",

	TokenConstant:        "constant",
	TokenTypeBuiltin:     "type.builtin",
	TokenFunctionBuiltin: "function.builtin",
	TokenIdentifier:      "identifier",

	TokenMarkupHeading: "markup.heading",
	TokenMarkupBold:    "markup.bold",
	TokenMarkupItalic:  "markup.italic",
	TokenMarkupStrike:  "markup.strike",
	TokenMarkupCode:    "markup.code",
	TokenMarkupQuote:   "markup.quote",
	TokenMarkupList:    "markup.list",
	TokenMarkupLink:    "markup.link",

	TokenTag:     "tag",
	TokenMention: "mention",
}

var scopeToToken = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenTypeNames))
	for i, name := range tokenTypeNames {
		m[name] = TokenType(i)
	}
	return m
}()

// String returns the scope name of the token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// TokenTypeFromString converts a scope name to a TokenType. Unknown
// sub-scopes fall back to their parent: "keyword.other" is TokenKeyword.
func TokenTypeFromString(scope string) TokenType {
	for scope != "" {
		if t, ok := scopeToToken[scope]; ok {
			return t
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return TokenNone
}

// Token is a highlighted range of a line. Columns count runes; End is
// exclusive.
type Token struct {
	Type  TokenType
	Start int
	End   int
}

// Len returns the token's length in runes.
func (t Token) Len() int {
	return t.End - t.Start
}

// LexerState carries multi-line constructs from one line to the next.
type LexerState uint32

// Lexer states.
const (
	LexerStateNormal LexerState = iota
	LexerStateBlockComment
	LexerStateRawString
	LexerStateFence
)

// Highlighter tokenizes one line at a time.
type Highlighter interface {
	// Language returns the highlighter's name.
	Language() string

	// FileExtensions returns the extensions it handles, with leading dots.
	FileExtensions() []string

	// HighlightLine tokenizes line given the state left by the previous
	// line and returns the state for the next one. Tokens are sorted and
	// never overlap.
	HighlightLine(line string, prev LexerState) ([]Token, LexerState)
}
