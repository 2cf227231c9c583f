package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

// Parser is a recursive-descent parser over grammar tokens. It records errors
// instead of stopping at the first one.
type Parser struct {
	filename     string
	tokens       []lexer.Token
	current      int
	errors       []*ParseError
	quantitative bool
}

// NewParser creates a parser over tokens produced by grammar.Tokenize.
func NewParser(filename string, tokens []lexer.Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

// Errors returns the errors recorded so far.
func (p *Parser) Errors() ErrorList {
	return ErrorList(p.errors)
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().EOF()
}

func isOp(tok lexer.Token, op string) bool {
	return tok.Type == grammar.OperatorToken && tok.Value == op
}

func isKeyword(tok lexer.Token, kw string) bool {
	return tok.Type == grammar.IdentToken && tok.Value == kw
}

func isName(tok lexer.Token) bool {
	return tok.Type == grammar.IdentToken && !grammar.IsKeyword(tok.Value)
}

func (p *Parser) checkOp(op string) bool {
	return isOp(p.peek(), op)
}

func (p *Parser) checkKeyword(kws ...string) bool {
	for _, kw := range kws {
		if isKeyword(p.peek(), kw) {
			return true
		}
	}
	return false
}

func (p *Parser) checkName() bool {
	return isName(p.peek())
}

func (p *Parser) matchOp(ops ...string) bool {
	for _, op := range ops {
		if p.checkOp(op) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(kws ...string) bool {
	if p.checkKeyword(kws...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consumeOp(op, message string) lexer.Token {
	if p.checkOp(op) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return p.peek()
}

func (p *Parser) consumeKeyword(kw, message string) lexer.Token {
	if p.checkKeyword(kw) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return p.peek()
}

// consumeIdent consumes a non-keyword identifier and returns an ast.Ident
func (p *Parser) consumeIdent(message string) ast.Ident {
	if !p.checkName() {
		p.errorAtCurrent(message)
		return ast.Ident{Span: p.spanAt(p.peek()), Value: "error"}
	}
	tok := p.advance()
	return p.makeIdent(tok)
}

// parseIdentList parses a comma-separated list of identifiers
func (p *Parser) parseIdentList(message string) []ast.Ident {
	idents := []ast.Ident{p.consumeIdent(message)}
	for p.checkOp(",") && isName(p.peekAt(1)) {
		p.advance()
		idents = append(idents, p.consumeIdent(message))
	}
	return idents
}

func (p *Parser) errorAtCurrent(message string) {
	tok := p.peek()
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos.Offset == tok.Pos.Offset {
		return
	}
	p.errors = append(p.errors, &ParseError{
		Msg: fmt.Sprintf("%s, found %s", message, describe(tok)),
		Pos: tok.Pos,
	})
}

func (p *Parser) errorAt(tok lexer.Token, message string) {
	p.errors = append(p.errors, &ParseError{Msg: message, Pos: tok.Pos})
}

func describe(tok lexer.Token) string {
	if tok.EOF() {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Value)
}

func (p *Parser) makePos(tok lexer.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Pos.Offset,
		Line:     tok.Pos.Line,
		Column:   tok.Pos.Column,
	}
}

func (p *Parser) makeEndPos(tok lexer.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Pos.Offset + len(tok.Value),
		Line:     tok.Pos.Line,
		Column:   tok.Pos.Column + len(tok.Value),
	}
}

func (p *Parser) makeIdent(tok lexer.Token) ast.Ident {
	return ast.Ident{Span: p.spanAt(tok), Value: tok.Value}
}

func (p *Parser) spanAt(tok lexer.Token) ast.Span {
	return ast.Span{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}
}

// spanFrom covers everything from start up to the last consumed token.
func (p *Parser) spanFrom(start lexer.Token) ast.Span {
	return ast.Span{Pos: p.makePos(start), EndPos: p.makeEndPos(p.previous())}
}

func (p *Parser) bad(message string) *ast.BadExpr {
	tok := p.peek()
	p.errorAtCurrent(message)
	return &ast.BadExpr{Span: p.spanAt(tok), Message: message}
}

type snapshot struct {
	current int
	errors  int
}

func (p *Parser) mark() snapshot {
	return snapshot{current: p.current, errors: len(p.errors)}
}

func (p *Parser) reset(s snapshot) {
	p.current = s.current
	p.errors = p.errors[:s.errors]
}

func (p *Parser) failedSince(s snapshot) bool {
	return len(p.errors) > s.errors
}

// synchronize skips to the end of the current declaration.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.matchOp(";") {
			return
		}
		if p.atSectionKeyword() {
			return
		}
		p.advance()
	}
}

func (p *Parser) atSectionKeyword() bool {
	tok := p.peek()
	return tok.Type == grammar.IdentToken && grammar.SectionKeywords[tok.Value]
}
