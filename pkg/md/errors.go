// errors.go defines the errors reported by Parse and Render.
package md

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse matches every *ParseError with errors.Is.
	ErrParse = errors.New("parse error")
	// ErrInvalidNode matches every *CodeGenError with errors.Is.
	ErrInvalidNode = errors.New("invalid node")
)

// ParseErrorKind classifies a parse failure.
type ParseErrorKind int

const (
	ErrKindMismatch      ParseErrorKind = iota // expected one token kind, found another
	ErrKindUnexpectedEnd                       // expected a token, input exhausted
	ErrKindUnrecognized                        // no production matches the lookahead
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrKindMismatch:
		return "mismatch"
	case ErrKindUnexpectedEnd:
		return "unexpected end"
	case ErrKindUnrecognized:
		return "unrecognized"
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// maxReportedTokens bounds how many remaining tokens an Unrecognized error
// lists in its message.
const maxReportedTokens = 8

// ParseError describes the first construct Parse could not match.
type ParseError struct {
	Kind     ParseErrorKind
	Expected TokenKind // set for Mismatch and UnexpectedEnd
	Found    TokenKind // set for Mismatch
	Pos      int       // byte offset of the offending token, or -1 at end of input
	// Remaining holds the unmatched tokens for Unrecognized.
	Remaining []Token
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindMismatch:
		return fmt.Sprintf("parse error at offset %d: expected %s but found %s", e.Pos, e.Expected, e.Found)
	case ErrKindUnexpectedEnd:
		return fmt.Sprintf("parse error: expected %s but reached end of input", e.Expected)
	default:
		return fmt.Sprintf("parse error at offset %d: unable to parse tokens: %s", e.Pos, formatTokens(e.Remaining))
	}
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func formatTokens(tokens []Token) string {
	var parts []string
	for i, tok := range tokens {
		if i == maxReportedTokens {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(tokens)-i))
			break
		}
		parts = append(parts, tok.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// CodeGenError reports a node outside the closed node set reaching Render.
type CodeGenError struct {
	Node Node
}

func (e *CodeGenError) Error() string {
	return fmt.Sprintf("invalid node: %T", e.Node)
}

// Is reports whether target is ErrInvalidNode.
func (e *CodeGenError) Is(target error) bool {
	return target == ErrInvalidNode
}
