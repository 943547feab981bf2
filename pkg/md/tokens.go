// tokens.go defines the token stream shared by the lexer and the parser.
package md

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the production a token was scanned from.
type TokenKind int

const (
	TokenHeader          TokenKind = iota // # Title
	TokenHeaderUnderline                  // === or --- on its own line
	TokenNewline                          // line break
	TokenText                             // plain text run within a line
	TokenBold                             // **text** or __text__
	TokenLink                             // [text](href)
)

var tokenKindNames = [...]string{
	TokenHeader:          "Header",
	TokenHeaderUnderline: "HeaderUnderline",
	TokenNewline:         "Newline",
	TokenText:            "Text",
	TokenBold:            "Bold",
	TokenLink:            "Link",
}

// String returns the kind name, e.g. "Header".
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText lets token kinds appear by name in JSON dumps.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a single lexical unit.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Level int       `json:"level,omitempty"` // set for Header (1-6) and HeaderUnderline (1 or 2)
	Text  string    `json:"text,omitempty"`  // set for Header, Text, Bold, Link
	Href  string    `json:"href,omitempty"`  // set for Link
	Pos   int       `json:"pos"`             // byte offset in the original input
}

// String renders the token for diagnostics, e.g. Link("docs", "/d").
func (t Token) String() string {
	switch t.Kind {
	case TokenHeader:
		return fmt.Sprintf("Header(%d, %q)", t.Level, t.Text)
	case TokenHeaderUnderline:
		return fmt.Sprintf("HeaderUnderline(%d)", t.Level)
	case TokenText, TokenBold:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case TokenLink:
		return fmt.Sprintf("Link(%q, %q)", t.Text, t.Href)
	default:
		return t.Kind.String()
	}
}
