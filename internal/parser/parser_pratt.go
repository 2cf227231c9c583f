package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

var dataBinders = []string{"forall", "exists", "lambda"}

// dataOperator reports the infix data operator at tok, if any. div, mod and
// in are spelled as identifiers.
func dataOperator(tok lexer.Token) (ast.Operator, bool) {
	switch tok.Type {
	case grammar.OperatorToken:
		op, ok := ast.DataOperators[tok.Value]
		return op, ok
	case grammar.IdentToken:
		switch tok.Value {
		case "div", "mod", "in":
			return ast.DataOperators[tok.Value], true
		}
	}
	return ast.Operator{}, false
}

// parseDataExpr parses a complete data expression including where clauses.
func (p *Parser) parseDataExpr() ast.DataExpr {
	start := p.peek()
	expr := p.parseDataPratt(ast.DataPrecBinder)

	for p.matchKeyword("whr") {
		assigns := []*ast.Assignment{p.parseAssignment()}
		for p.matchOp(",") {
			assigns = append(assigns, p.parseAssignment())
		}
		p.consumeKeyword("end", "expected 'end' to close where clause")

		expr = &ast.DataWhere{
			Span:        p.spanFrom(start),
			Body:        expr,
			Assignments: assigns,
		}
	}

	return expr
}

func (p *Parser) parseDataPratt(minPrec int) ast.DataExpr {
	start := p.peek()
	expr := p.parseDataUnit()

	for {
		tok := p.peek()
		op, ok := dataOperator(tok)
		if !ok || op.Prec < minPrec {
			break
		}

		p.advance()
		next := op.Prec + 1
		if op.Right {
			next = op.Prec
		}
		right := p.parseDataPratt(next)

		expr = &ast.DataBinary{
			Span:  p.spanFrom(start),
			Op:    tok.Value,
			Left:  expr,
			Right: right,
		}
	}

	return expr
}

// parseDataUnit parses prefix operators, binders and applications: the
// data expressions that may stand next to process and formula operators.
func (p *Parser) parseDataUnit() ast.DataExpr {
	start := p.peek()

	if p.checkKeyword(dataBinders...) {
		kind := p.advance().Value
		vars := p.parseVarsDecl()
		p.consumeOp(".", "expected '.' after "+kind+" variables")
		body := p.parseDataPratt(ast.DataPrecBinder)
		return &ast.DataBinder{
			Span: p.spanFrom(start),
			Kind: kind,
			Vars: vars,
			Body: body,
		}
	}

	if p.matchOp("!", "-", "#") {
		operand := p.parseDataUnit()
		return &ast.DataUnary{
			Span:    p.spanFrom(start),
			Op:      start.Value,
			Operand: operand,
		}
	}

	return p.parseDataPostfix(p.parseDataPrimary())
}

func (p *Parser) parseDataPostfix(expr ast.DataExpr) ast.DataExpr {
	for p.checkOp("(") {
		p.advance()
		args := p.parseDataList()
		p.consumeOp(")", "expected ')' after arguments")
		expr = &ast.DataApply{
			Span: ast.Span{Pos: expr.NodePos(), EndPos: p.makeEndPos(p.previous())},
			Head: expr,
			Args: args,
		}
	}
	return expr
}

func (p *Parser) parseDataList() []ast.DataExpr {
	args := []ast.DataExpr{p.parseDataExpr()}
	for p.matchOp(",") {
		args = append(args, p.parseDataExpr())
	}
	return args
}

func (p *Parser) parseDataPrimary() ast.DataExpr {
	tok := p.peek()

	switch {
	case tok.Type == grammar.NumberToken:
		p.advance()
		return &ast.DataNumber{Span: p.spanAt(tok), Value: tok.Value}

	case isKeyword(tok, "true"), isKeyword(tok, "false"), isName(tok):
		p.advance()
		return &ast.DataIdent{Span: p.spanAt(tok), Name: tok.Value}

	case isOp(tok, "("):
		p.advance()
		expr := p.parseDataExpr()
		p.consumeOp(")", "expected ')' after expression")
		return expr

	case isOp(tok, "["):
		p.advance()
		list := &ast.DataList{}
		if !p.checkOp("]") {
			list.Elems = p.parseDataList()
		}
		p.consumeOp("]", "expected ']' to close list")
		list.Span = p.spanFrom(tok)
		return list

	case isOp(tok, "{"):
		return p.parseBraces()
	}

	return p.bad("expected data expression")
}

// parseBraces parses set and bag enumerations and comprehensions.
func (p *Parser) parseBraces() ast.DataExpr {
	start := p.advance()

	if p.matchOp("}") {
		return &ast.DataSet{Span: p.spanFrom(start)}
	}
	if p.checkOp(":") && isOp(p.peekAt(1), "}") {
		p.advance()
		p.advance()
		return &ast.DataBag{Span: p.spanFrom(start)}
	}

	if isName(p.peek()) && isOp(p.peekAt(1), ":") {
		s := p.mark()
		name := p.consumeIdent("expected variable name")
		p.advance()
		sort := p.parseSort()
		if !p.failedSince(s) && p.matchOp("|") {
			body := p.parseDataExpr()
			p.consumeOp("}", "expected '}' to close comprehension")
			return &ast.DataComprehension{
				Span: p.spanFrom(start),
				Var:  &ast.VarDecl{Span: ast.Span{Pos: name.Pos, EndPos: sort.NodeEndPos()}, Name: name, Sort: sort},
				Body: body,
			}
		}
		p.reset(s)
	}

	first := p.parseDataExpr()
	if p.checkOp(":") {
		bag := &ast.DataBag{}
		bag.Elems = append(bag.Elems, p.parseBagElem(first))
		for p.matchOp(",") {
			bag.Elems = append(bag.Elems, p.parseBagElem(p.parseDataExpr()))
		}
		p.consumeOp("}", "expected '}' to close bag")
		bag.Span = p.spanFrom(start)
		return bag
	}

	set := &ast.DataSet{Elems: []ast.DataExpr{first}}
	for p.matchOp(",") {
		set.Elems = append(set.Elems, p.parseDataExpr())
	}
	p.consumeOp("}", "expected '}' to close set")
	set.Span = p.spanFrom(start)
	return set
}

func (p *Parser) parseBagElem(elem ast.DataExpr) *ast.BagElem {
	p.consumeOp(":", "expected ':' after bag element")
	count := p.parseDataExpr()
	return &ast.BagElem{
		Span:  ast.Span{Pos: elem.NodePos(), EndPos: count.NodeEndPos()},
		Elem:  elem,
		Count: count,
	}
}

func (p *Parser) parseAssignment() *ast.Assignment {
	start := p.peek()
	name := p.consumeIdent("expected variable name in assignment")
	p.consumeOp("=", "expected '=' after "+name.Value)
	value := p.parseDataExpr()
	return &ast.Assignment{Span: p.spanFrom(start), Name: name, Value: value}
}
