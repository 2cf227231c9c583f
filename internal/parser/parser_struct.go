package parser

import (
	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

var containerSorts = map[string]bool{
	"List": true, "Set": true, "Bag": true, "FSet": true, "FBag": true,
}

// parseSort parses a full sort expression; "->" groups to the right.
func (p *Parser) parseSort() ast.SortExpr {
	start := p.peek()
	domain := p.parseSortProduct()

	if p.matchOp("->") {
		codomain := p.parseSort()
		return &ast.FunctionSort{
			Span:     p.spanFrom(start),
			Domain:   domain,
			Codomain: codomain,
		}
	}

	if len(domain) > 1 {
		p.errorAtCurrent("expected '->' after sort product")
	}
	return domain[0]
}

// parseSortProduct parses "S1 # S2 # ...", as used by function domains and
// action declarations.
func (p *Parser) parseSortProduct() []ast.SortExpr {
	sorts := []ast.SortExpr{p.parseSortPrimary()}
	for p.matchOp("#") {
		sorts = append(sorts, p.parseSortPrimary())
	}
	return sorts
}

func (p *Parser) parseSortPrimary() ast.SortExpr {
	tok := p.peek()

	switch {
	case tok.Type == grammar.IdentToken && containerSorts[tok.Value]:
		p.advance()
		p.consumeOp("(", "expected '(' after "+tok.Value)
		elem := p.parseSort()
		p.consumeOp(")", "expected ')' to close "+tok.Value)
		return &ast.ContainerSort{Span: p.spanFrom(tok), Kind: tok.Value, Elem: elem}

	case tok.Type == grammar.IdentToken && (grammar.SortKeywords[tok.Value] || isName(tok)):
		p.advance()
		return &ast.SortIdent{Span: p.spanAt(tok), Name: tok.Value}

	case isKeyword(tok, "struct"):
		return p.parseStructSort()

	case isOp(tok, "("):
		p.advance()
		s := p.parseSort()
		p.consumeOp(")", "expected ')' after sort")
		return s
	}

	return p.bad("expected sort")
}

// parseStructSort parses "struct c1(p: S)?isC1 | c2"
func (p *Parser) parseStructSort() *ast.StructSort {
	start := p.advance()

	cons := []*ast.StructCons{p.parseStructCons()}
	for p.matchOp("|") {
		cons = append(cons, p.parseStructCons())
	}

	return &ast.StructSort{Span: p.spanFrom(start), Constructors: cons}
}

func (p *Parser) parseStructCons() *ast.StructCons {
	start := p.peek()
	cons := &ast.StructCons{Name: p.consumeIdent("expected constructor name")}

	if p.matchOp("(") {
		cons.Projections = append(cons.Projections, p.parseStructProj())
		for p.matchOp(",") {
			cons.Projections = append(cons.Projections, p.parseStructProj())
		}
		p.consumeOp(")", "expected ')' after constructor arguments")
	}

	if p.matchOp("?") {
		cons.Recognizer = p.consumeIdent("expected recognizer name after '?'").Value
	}

	cons.Span = p.spanFrom(start)
	return cons
}

func (p *Parser) parseStructProj() *ast.StructProj {
	start := p.peek()
	proj := &ast.StructProj{}

	if isName(start) && isOp(p.peekAt(1), ":") {
		proj.Name = p.advance().Value
		p.advance()
	}
	proj.Sort = p.parseSort()

	proj.Span = p.spanFrom(start)
	return proj
}

// parseVarsDecl parses "x, y: Nat, b: Bool" into one VarDecl per name.
func (p *Parser) parseVarsDecl() []*ast.VarDecl {
	var vars []*ast.VarDecl

	for {
		names := p.parseIdentList("expected variable name")
		p.consumeOp(":", "expected ':' after variable names")
		sort := p.parseSort()

		for _, name := range names {
			vars = append(vars, &ast.VarDecl{
				Span: ast.Span{Pos: name.Pos, EndPos: sort.NodeEndPos()},
				Name: name,
				Sort: sort,
			})
		}

		if !(p.checkOp(",") && isName(p.peekAt(1))) {
			break
		}
		p.advance()
	}

	return vars
}
