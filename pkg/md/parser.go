// parser.go implements the recursive-descent parser over the token stream.
package md

// Parse builds a syntax tree from tokens. It stops at the first construct
// that matches no production and returns a *ParseError; no partial tree is
// returned in that case.
func Parse(tokens []Token) (*Root, error) {
	p := &parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parse() (*Root, error) {
	root := &Root{}

	for p.pos < len(p.tokens) {
		var (
			block Block
			err   error
		)

		switch {
		case p.peek(TokenHeader, 1):
			block, err = p.parseHeader()
		case p.peek(TokenText, 1) && p.peek(TokenNewline, 2) && p.peek(TokenHeaderUnderline, 3):
			block, err = p.parseUnderlineHeader()
		case p.peek(TokenLink, 1):
			block, err = p.parseStandaloneLink()
		case p.peekAny(TokenText, TokenBold):
			block, err = p.parseParagraph()
		default:
			return nil, &ParseError{
				Kind:      ErrKindUnrecognized,
				Pos:       p.tokens[p.pos].Pos,
				Remaining: p.tokens[p.pos:],
			}
		}
		if err != nil {
			return nil, err
		}

		root.Children = append(root.Children, block)
	}

	return root, nil
}

// parseHeader parses: Header Newline
func (p *parser) parseHeader() (*Header, error) {
	tok, err := p.consume(TokenHeader)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenNewline); err != nil {
		return nil, err
	}
	return &Header{Level: tok.Level, Text: tok.Text}, nil
}

// parseUnderlineHeader parses: Text Newline HeaderUnderline Newline
func (p *parser) parseUnderlineHeader() (*Header, error) {
	text, err := p.consume(TokenText)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenNewline); err != nil {
		return nil, err
	}
	underline, err := p.consume(TokenHeaderUnderline)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenNewline); err != nil {
		return nil, err
	}
	return &Header{Level: underline.Level, Text: text.Text}, nil
}

// parseStandaloneLink parses: Link Newline
func (p *parser) parseStandaloneLink() (*Link, error) {
	tok, err := p.consume(TokenLink)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenNewline); err != nil {
		return nil, err
	}
	return &Link{Text: tok.Text, Href: tok.Href}, nil
}

// parseParagraph parses: (Text | Bold | Link)+ Newline
func (p *parser) parseParagraph() (*Paragraph, error) {
	para := &Paragraph{}

	for p.peekAny(TokenText, TokenBold, TokenLink) {
		tok := p.next()
		switch tok.Kind {
		case TokenText:
			para.Children = append(para.Children, &Text{Text: tok.Text})
		case TokenBold:
			para.Children = append(para.Children, &Text{Text: tok.Text, Bold: true})
		case TokenLink:
			para.Children = append(para.Children, &Link{Text: tok.Text, Href: tok.Href})
		}
	}

	if _, err := p.consume(TokenNewline); err != nil {
		return nil, err
	}
	return para, nil
}

// peek reports whether the token depth positions ahead (1 = next) has the
// given kind.
func (p *parser) peek(kind TokenKind, depth int) bool {
	i := p.pos + depth - 1
	return i < len(p.tokens) && p.tokens[i].Kind == kind
}

func (p *parser) peekAny(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.peek(kind, 1) {
			return true
		}
	}
	return false
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// consume takes the next token, failing unless it has the expected kind.
func (p *parser) consume(kind TokenKind) (Token, error) {
	if p.pos >= len(p.tokens) {
		return Token{}, &ParseError{Kind: ErrKindUnexpectedEnd, Expected: kind, Pos: -1}
	}
	tok := p.tokens[p.pos]
	if tok.Kind != kind {
		return Token{}, &ParseError{Kind: ErrKindMismatch, Expected: kind, Found: tok.Kind, Pos: tok.Pos}
	}
	p.pos++
	return tok, nil
}
