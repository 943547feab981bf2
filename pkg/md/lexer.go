// lexer.go implements the line-oriented scanner that turns markdown into tokens.
package md

import (
	"regexp"
	"strings"
)

var (
	// atxHeaderPattern matches "# Title" through "###### Title".
	atxHeaderPattern = regexp.MustCompile(`^(#{1,6}) (.+)`)
	// underlinePattern matches a line made of "=" or "-" only, optionally
	// followed by spaces.
	underlinePattern = regexp.MustCompile(`^(=+|-+) *$`)
	boldPattern      = regexp.MustCompile(`^(?:\*\*(.+?)\*\*|__(.+?)__)`)
	linkPattern      = regexp.MustCompile(`^\[(.+?)\]\((.*?)\)`)
)

// Tokenize scans input and returns its token stream.
//
// Tokenize never fails: input the grammar does not cover still produces a
// token sequence, which Parse then rejects. A non-empty stream always ends
// with a Newline token.
func Tokenize(input string) []Token {
	lx := &lexer{
		input: input,
		end:   len(input),
	}
	lx.pos = len(input) - len(strings.TrimLeftFunc(input, isSpace))
	return lx.run()
}

// lexer holds the scan state for one Tokenize call. The input is never
// modified; pos and end delimit the part still to be scanned.
type lexer struct {
	input  string
	pos    int
	end    int
	tokens []Token
}

func (lx *lexer) run() []Token {
	for lx.pos < lx.end {
		lx.scanLine()
		lx.trimTrailingSpace()
	}

	if n := len(lx.tokens); n > 0 && lx.tokens[n-1].Kind != TokenNewline {
		lx.emit(Token{Kind: TokenNewline, Pos: lx.end})
	}
	return lx.tokens
}

// scanLine consumes one production starting at pos. Every branch advances
// pos by at least one byte.
func (lx *lexer) scanLine() {
	line := lx.currentLine()

	if m := atxHeaderPattern.FindStringSubmatch(line); m != nil {
		lx.emit(Token{Kind: TokenHeader, Level: len(m[1]), Text: m[2], Pos: lx.pos})
		lx.pos += len(m[0])
		return
	}

	if m := underlinePattern.FindStringSubmatch(line); m != nil {
		level := 2
		if strings.Contains(m[1], "=") {
			level = 1
		}
		lx.emit(Token{Kind: TokenHeaderUnderline, Level: level, Pos: lx.pos})
		lx.pos += len(line)
		return
	}

	if lx.input[lx.pos] == '\n' {
		lx.emit(Token{Kind: TokenNewline, Pos: lx.pos})
		lx.pos++
		return
	}

	lx.scanInline(line)
}

// scanInline splits a text line into Text, Bold and Link tokens.
func (lx *lexer) scanInline(line string) {
	start := lx.pos
	textStart := 0
	i := 0

	flush := func() {
		if i > textStart {
			lx.emit(Token{Kind: TokenText, Text: line[textStart:i], Pos: start + textStart})
		}
	}

	for i < len(line) {
		rest := line[i:]

		switch rest[0] {
		case '*', '_':
			if m := boldPattern.FindStringSubmatch(rest); m != nil {
				flush()
				text := m[1]
				if text == "" {
					text = m[2]
				}
				lx.emit(Token{Kind: TokenBold, Text: text, Pos: start + i})
				i += len(m[0])
				textStart = i
				continue
			}
		case '[':
			if m := linkPattern.FindStringSubmatch(rest); m != nil {
				flush()
				lx.emit(Token{Kind: TokenLink, Text: m[1], Href: m[2], Pos: start + i})
				// [ ] ( ) account for the four bytes around text and href.
				i += len(m[1]) + len(m[2]) + 4
				textStart = i
				continue
			}
		}
		i++
	}
	flush()

	lx.pos += len(line)
}

// currentLine returns the unscanned input up to, not including, the next
// line break.
func (lx *lexer) currentLine() string {
	rest := lx.input[lx.pos:lx.end]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// trimTrailingSpace drops trailing whitespace from the end of the
// unscanned input.
func (lx *lexer) trimTrailingSpace() {
	rest := lx.input[lx.pos:lx.end]
	lx.end = lx.pos + len(strings.TrimRightFunc(rest, isSpace))
}

func (lx *lexer) emit(tok Token) {
	lx.tokens = append(lx.tokens, tok)
}

// isSpace reports whether r is ASCII whitespace. Non-breaking and other
// Unicode spaces are content.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
