package parser

import (
	"fmt"
	"os"

	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

// ParseProcessSpecification parses an mCRL2 specification. Text without any
// section keyword is read as a single process expression.
func ParseProcessSpecification(filename, text string) (*ast.ProcessSpecification, error) {
	tokens, err := grammar.Tokenize(filename, text)
	if err != nil {
		return nil, fromLexerError(err)
	}

	p := NewParser(filename, tokens)
	spec := p.parseProcessSpecification()
	if len(p.errors) > 0 {
		return nil, p.Errors()
	}
	return spec, nil
}

// ParseStateFormulaSpecification parses a modal formula, optionally preceded
// by data and action declarations and wrapped in a "form" section. The
// quantitative dialect is accepted only when quantitative is set.
func ParseStateFormulaSpecification(filename, text string, quantitative bool) (*ast.StateFormulaSpecification, error) {
	tokens, err := grammar.Tokenize(filename, text)
	if err != nil {
		return nil, fromLexerError(err)
	}

	p := NewParser(filename, tokens)
	p.quantitative = quantitative
	spec := p.parseStateFormulaSpecification()
	if len(p.errors) > 0 {
		return nil, p.Errors()
	}
	return spec, nil
}

// ParseFile reads and parses an mCRL2 file.
func ParseFile(path string) (*ast.ProcessSpecification, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseProcessSpecification(path, string(source))
}

func (p *Parser) parseProcessSpecification() *ast.ProcessSpecification {
	start := p.peek()
	spec := &ast.ProcessSpecification{}

	if !p.atSectionKeyword() && !p.isAtEnd() {
		spec.Bare = p.parseProcExpr()
		p.expectEnd()
		spec.Span = p.spanFrom(start)
		return spec
	}

	seenInit := false
	for p.atSectionKeyword() {
		tok := p.peek()
		switch tok.Value {
		case "form":
			p.errorAtCurrent("'form' is not allowed in a process specification")
			p.advance()
			p.synchronize()
			continue
		case "init":
			if seenInit {
				p.errorAtCurrent("duplicate init section")
			}
			seenInit = true
		}
		spec.Sections = append(spec.Sections, p.parseSection())
	}

	p.expectEnd()
	spec.Span = p.spanFrom(start)
	return spec
}

var formulaSections = map[string]bool{
	"sort": true, "cons": true, "map": true, "var": true, "eqn": true, "act": true,
}

func (p *Parser) parseStateFormulaSpecification() *ast.StateFormulaSpecification {
	start := p.peek()
	spec := &ast.StateFormulaSpecification{}

	if !p.atSectionKeyword() {
		spec.Formula = p.parseStateFrm()
		spec.Bare = true
		p.expectEnd()
		spec.Span = p.spanFrom(start)
		return spec
	}

	for p.atSectionKeyword() {
		tok := p.peek()
		if tok.Value == "form" {
			p.advance()
			spec.Formula = p.parseStateFrm()
			p.consumeOp(";", "expected ';' after formula")
			break
		}
		if !formulaSections[tok.Value] {
			p.errorAtCurrent("'" + tok.Value + "' is not allowed in a state formula specification")
			p.advance()
			p.synchronize()
			continue
		}
		spec.Sections = append(spec.Sections, p.parseSection())
	}

	if spec.Formula == nil {
		spec.Formula = p.bad("expected 'form' section")
	}

	p.expectEnd()
	spec.Span = p.spanFrom(start)
	return spec
}

func (p *Parser) expectEnd() {
	if !p.isAtEnd() {
		p.errorAtCurrent("expected end of input")
	}
}

// parseSection parses a section keyword and the declarations that follow it
// up to the next section keyword.
func (p *Parser) parseSection() *ast.Section {
	start := p.advance()
	sec := &ast.Section{Keyword: start.Value}

	for !p.isAtEnd() && !p.atSectionKeyword() {
		s := p.mark()
		decl := p.parseDecl(sec.Keyword)
		if p.failedSince(s) {
			p.synchronize()
		}
		if decl != nil {
			sec.Decls = append(sec.Decls, decl)
		}
		if sec.Keyword == "init" {
			break
		}
	}

	if len(sec.Decls) == 0 {
		p.errorAtCurrent("expected declaration after '" + sec.Keyword + "'")
	}

	sec.Span = p.spanFrom(start)
	return sec
}

func (p *Parser) parseDecl(keyword string) ast.Decl {
	start := p.peek()

	switch keyword {
	case "sort":
		d := &ast.SortDecl{Names: p.parseIdentList("expected sort name")}
		if p.matchOp("=") {
			if len(d.Names) > 1 {
				p.errorAt(start, "a sort definition declares a single name")
			}
			d.Def = p.parseSort()
		}
		p.consumeOp(";", "expected ';' after sort declaration")
		d.Span = p.spanFrom(start)
		return d

	case "cons", "map", "var", "glob":
		d := &ast.IdsDecl{Names: p.parseIdentList("expected identifier")}
		p.consumeOp(":", "expected ':' after names")
		d.Sort = p.parseSort()
		p.consumeOp(";", "expected ';' after declaration")
		d.Span = p.spanFrom(start)
		return d

	case "act":
		d := &ast.ActionDecl{Names: p.parseIdentList("expected action name")}
		if p.matchOp(":") {
			d.Sorts = p.parseSortProduct()
		}
		p.consumeOp(";", "expected ';' after action declaration")
		d.Span = p.spanFrom(start)
		return d

	case "eqn":
		d := &ast.EqnDecl{Lhs: p.parseDataExpr()}
		if p.matchOp("->") {
			d.Condition = d.Lhs
			d.Lhs = p.parseDataExpr()
		}
		p.consumeOp("=", "expected '=' in equation")
		d.Rhs = p.parseDataExpr()
		p.consumeOp(";", "expected ';' after equation")
		d.Span = p.spanFrom(start)
		return d

	case "proc":
		d := &ast.ProcDecl{Name: p.consumeIdent("expected process name")}
		if p.matchOp("(") {
			d.Params = p.parseVarsDecl()
			p.consumeOp(")", "expected ')' after process parameters")
		}
		p.consumeOp("=", "expected '=' after process name")
		d.Body = p.parseProcExpr()
		p.consumeOp(";", "expected ';' after process definition")
		d.Span = p.spanFrom(start)
		return d

	case "init":
		d := &ast.InitDecl{Proc: p.parseProcExpr()}
		p.consumeOp(";", "expected ';' after initial process")
		d.Span = p.spanFrom(start)
		return d
	}

	p.errorAtCurrent("unexpected section '" + keyword + "'")
	return nil
}
