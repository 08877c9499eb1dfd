package tpp

import (
	"strings"
	"unicode/utf8"
)

// TokenKind discriminates inline-markup tokens.
type TokenKind uint8

const (
	// TokenText is a run of literal characters.
	TokenText TokenKind = iota
	// TokenToggle switches a boolean attribute on or off.
	TokenToggle
	// TokenColorPush activates a named color, stacking the previous one.
	TokenColorPush
	// TokenColorPop restores the previously stacked color.
	TokenColorPop
)

// Attr names a toggleable style attribute.
type Attr uint8

const (
	AttrBold Attr = iota
	AttrUnderline
	AttrReverse
)

// Token is one element of a tokenized markup line. Exactly one of the
// payload fields is meaningful depending on Kind.
type Token struct {
	Kind  TokenKind
	Text  string // TokenText
	Attr  Attr   // TokenToggle
	On    bool   // TokenToggle
	Color Color  // TokenColorPush
}

// marker is a fixed inline-markup prefix. Closing markers come before
// the opening markers they are textual extensions of, so the longest
// applicable marker always wins.
type marker struct {
	lit  string
	attr Attr
	on   bool
}

var markers = []marker{
	{"--/b", AttrBold, false},
	{"--b", AttrBold, true},
	{"--/u", AttrUnderline, false},
	{"--u", AttrUnderline, true},
	{"--/rev", AttrReverse, false},
	{"--rev", AttrReverse, true},
}

const (
	escapeSeq  = `\--`
	colorClose = "--/c"
	colorOpen  = "--c"
)

// Tokenize scans one line of text into literal-text and markup tokens.
// The token sequence covers the whole input: malformed markup (an
// unknown color name, a bare "--") degrades to literal text instead of
// failing. An escaped "\--" yields the two hyphens as literal text and
// whatever follows is never reinterpreted as a marker.
func Tokenize(line string) []Token {
	var toks []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, Token{Kind: TokenText, Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(line) {
		rest := line[i:]
		if strings.HasPrefix(rest, escapeSeq) {
			lit.WriteString("--")
			i += len(escapeSeq)
			continue
		}
		if strings.HasPrefix(rest, "--") {
			if m, ok := matchToggle(rest); ok {
				flush()
				toks = append(toks, Token{Kind: TokenToggle, Attr: m.attr, On: m.on})
				i += len(m.lit)
				continue
			}
			if strings.HasPrefix(rest, colorClose) {
				flush()
				toks = append(toks, Token{Kind: TokenColorPop})
				i += len(colorClose)
				continue
			}
			if color, n, ok := matchColorOpen(rest); ok {
				flush()
				toks = append(toks, Token{Kind: TokenColorPush, Color: color})
				i += n
				continue
			}
			// Not a marker after all. Fall through one character at a
			// time so the hyphens come out as ordinary text.
		}
		r, size := utf8.DecodeRuneInString(rest)
		lit.WriteRune(r)
		i += size
	}
	flush()
	if toks == nil {
		toks = []Token{{Kind: TokenText, Text: ""}}
	}
	return toks
}

func matchToggle(rest string) (marker, bool) {
	for _, m := range markers {
		if strings.HasPrefix(rest, m.lit) {
			return m, true
		}
	}
	return marker{}, false
}

// matchColorOpen recognizes "--c" followed by whitespace and a valid
// color name. It reports the number of input bytes the marker consumes.
// Anything else, including an unknown color name, is not a marker.
func matchColorOpen(rest string) (Color, int, bool) {
	if !strings.HasPrefix(rest, colorOpen) {
		return 0, 0, false
	}
	i := len(colorOpen)
	ws := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
		ws++
	}
	if ws == 0 {
		return 0, 0, false
	}
	start := i
	for i < len(rest) && isLetter(rest[i]) {
		i++
	}
	if start == i {
		return 0, 0, false
	}
	color, ok := ColorByName(rest[start:i])
	if !ok {
		return 0, 0, false
	}
	return color, i, true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// StripMarkup removes all inline markup from a line, keeping literal
// text (including the text produced by escapes). Backends without
// styling support render the result of StripMarkup.
func StripMarkup(line string) string {
	var b strings.Builder
	for _, tok := range Tokenize(line) {
		if tok.Kind == TokenText {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}
