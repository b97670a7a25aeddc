package surface

// digraphs maps two-character sequences to the character they compose,
// after the RFC 1345 mnemonics vim uses.
var digraphs = map[string]rune{
	"a:": 'ä', "o:": 'ö', "u:": 'ü', "A:": 'Ä', "O:": 'Ö', "U:": 'Ü',
	"e'": 'é', "a'": 'á', "i'": 'í', "o'": 'ó', "u'": 'ú', "E'": 'É',
	"e!": 'è', "a!": 'à', "e>": 'ê', "a>": 'â', "o>": 'ô', "c,": 'ç',
	"n?": 'ñ', "N?": 'Ñ', "ss": 'ß', "o/": 'ø', "O/": 'Ø', "aa": 'å',
	"ae": 'æ', "AE": 'Æ', "Eu": '€', "Pd": '£', "Ye": '¥', "Ct": '¢',
	"Co": '©', "Rg": '®', "TM": '™', "SE": '§', "PI": '¶', "DG": '°',
	"+-": '±', "*X": '×', "-:": '÷', "12": '½', "14": '¼', "34": '¾',
	"->": '→', "<-": '←', "-!": '↑', "-v": '↓', "=>": '⇒', "<=": '≤',
	">=": '≥', "!=": '≠', "?=": '≅', "OK": '✓', "XX": '✗', "..": '‥',
	",.": '…', "<<": '«', ">>": '»', "a*": 'α', "b*": 'β', "l*": 'λ',
	"m*": 'μ', "p*": 'π', "s*": 'σ', "D*": 'Δ', "W*": 'Ω',
}

// Digraph returns the character composed from a and b. Either order is
// accepted. When the pair is unknown the result is b and ok is false.
func Digraph(a, b rune) (r rune, ok bool) {
	if r, ok := digraphs[string([]rune{a, b})]; ok {
		return r, true
	}
	if r, ok := digraphs[string([]rune{b, a})]; ok {
		return r, true
	}
	return b, false
}
