package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

func (p *Parser) parseProcExpr() ast.ProcExpr {
	return p.parseProcPratt(1)
}

func (p *Parser) parseProcPratt(minPrec int) ast.ProcExpr {
	start := p.peek()
	expr := p.parseProcPrefix()

	for {
		tok := p.peek()

		if isOp(tok, "@") && ast.ProcPrecAt >= minPrec {
			p.advance()
			at := p.parseDataUnit()
			expr = &ast.ProcAt{Span: p.spanFrom(start), Body: expr, Time: at}
			continue
		}

		op, ok := ast.ProcOperators[tok.Value]
		if tok.Type != grammar.OperatorToken || !ok || op.Prec < minPrec {
			break
		}

		p.advance()
		next := op.Prec + 1
		if op.Right {
			next = op.Prec
		}
		right := p.parseProcPratt(next)

		expr = &ast.ProcBinary{
			Span:  p.spanFrom(start),
			Op:    tok.Value,
			Left:  expr,
			Right: right,
		}
	}

	return expr
}

func (p *Parser) parseProcPrefix() ast.ProcExpr {
	start := p.peek()

	switch {
	case isKeyword(start, "sum"):
		p.advance()
		vars := p.parseVarsDecl()
		p.consumeOp(".", "expected '.' after sum variables")
		body := p.parseProcPratt(ast.ProcPrecSum)
		return &ast.ProcSum{Span: p.spanFrom(start), Vars: vars, Body: body}

	case isKeyword(start, "dist"):
		p.advance()
		vars := p.parseVarsDecl()
		p.consumeOp("[", "expected '[' before distribution")
		dist := p.parseDataExpr()
		p.consumeOp("]", "expected ']' after distribution")
		p.consumeOp(".", "expected '.' after distribution")
		body := p.parseProcPratt(ast.ProcPrecSum)
		return &ast.ProcDist{Span: p.spanFrom(start), Vars: vars, Dist: dist, Body: body}
	}

	if startsDataUnit(start) {
		s := p.mark()
		cond := p.parseDataUnit()
		if !p.failedSince(s) && p.matchOp("->") {
			then := p.parseProcPratt(ast.ProcPrecCond)
			var els ast.ProcExpr
			if p.matchOp("<>") {
				els = p.parseProcPratt(ast.ProcPrecCond)
			}
			return &ast.ProcCond{Span: p.spanFrom(start), Cond: cond, Then: then, Else: els}
		}
		p.reset(s)
	}

	return p.parseProcPrimary()
}

// startsDataUnit reports whether tok can begin a data expression that is
// followed by "->" in a conditional.
func startsDataUnit(tok lexer.Token) bool {
	switch {
	case tok.Type == grammar.NumberToken, isName(tok):
		return true
	case tok.Type == grammar.IdentToken:
		switch tok.Value {
		case "true", "false", "forall", "exists", "lambda":
			return true
		}
	case tok.Type == grammar.OperatorToken:
		switch tok.Value {
		case "(", "!", "-", "#", "[", "{":
			return true
		}
	}
	return false
}

func (p *Parser) parseProcPrimary() ast.ProcExpr {
	start := p.peek()

	switch {
	case isKeyword(start, "delta"), isKeyword(start, "tau"):
		p.advance()
		return &ast.ProcConst{Span: p.spanAt(start), Name: start.Value}

	case isKeyword(start, "block"), isKeyword(start, "hide"):
		p.advance()
		p.consumeOp("(", "expected '(' after "+start.Value)
		names := p.parseNameSet()
		p.consumeOp(",", "expected ',' after action set")
		body := p.parseProcExpr()
		p.consumeOp(")", "expected ')' to close "+start.Value)
		return &ast.ProcBlock{Span: p.spanFrom(start), Op: start.Value, Names: names, Body: body}

	case isKeyword(start, "allow"):
		p.advance()
		p.consumeOp("(", "expected '(' after allow")
		var multis [][]ast.Ident
		p.parseSet(func() {
			multis = append(multis, p.parseMultiActionName())
		})
		p.consumeOp(",", "expected ',' after multi-action set")
		body := p.parseProcExpr()
		p.consumeOp(")", "expected ')' to close allow")
		return &ast.ProcAllow{Span: p.spanFrom(start), MultiActions: multis, Body: body}

	case isKeyword(start, "rename"):
		p.advance()
		p.consumeOp("(", "expected '(' after rename")
		var rules []*ast.RenameRule
		p.parseSet(func() {
			ruleStart := p.peek()
			from := p.consumeIdent("expected action name")
			p.consumeOp("->", "expected '->' in rename rule")
			to := p.consumeIdent("expected action name")
			rules = append(rules, &ast.RenameRule{Span: p.spanFrom(ruleStart), From: from, To: to})
		})
		p.consumeOp(",", "expected ',' after rename set")
		body := p.parseProcExpr()
		p.consumeOp(")", "expected ')' to close rename")
		return &ast.ProcRename{Span: p.spanFrom(start), Rules: rules, Body: body}

	case isKeyword(start, "comm"):
		p.advance()
		p.consumeOp("(", "expected '(' after comm")
		var rules []*ast.CommRule
		p.parseSet(func() {
			ruleStart := p.peek()
			lhs := p.parseMultiActionName()
			p.consumeOp("->", "expected '->' in communication rule")
			var rhs ast.Ident
			if p.checkKeyword("tau") {
				rhs = p.makeIdent(p.advance())
			} else {
				rhs = p.consumeIdent("expected action name")
			}
			rules = append(rules, &ast.CommRule{Span: p.spanFrom(ruleStart), Lhs: lhs, Rhs: rhs})
		})
		p.consumeOp(",", "expected ',' after communication set")
		body := p.parseProcExpr()
		p.consumeOp(")", "expected ')' to close comm")
		return &ast.ProcComm{Span: p.spanFrom(start), Rules: rules, Body: body}

	case isOp(start, "("):
		p.advance()
		expr := p.parseProcExpr()
		p.consumeOp(")", "expected ')' after process expression")
		return expr

	case isName(start):
		return p.parseProcInstance()
	}

	return p.bad("expected process expression")
}

// parseProcInstance parses "a", "a(1, 2)", "P(x = 1)" and "P()".
func (p *Parser) parseProcInstance() ast.ProcExpr {
	start := p.peek()
	name := p.consumeIdent("expected action or process name")

	if !p.checkOp("(") {
		return &ast.ProcInstance{Span: p.spanFrom(start), Name: name}
	}

	if isOp(p.peekAt(1), ")") || (isName(p.peekAt(1)) && isOp(p.peekAt(2), "=")) {
		p.advance()
		var assigns []*ast.Assignment
		if !p.checkOp(")") {
			assigns = append(assigns, p.parseAssignment())
			for p.matchOp(",") {
				assigns = append(assigns, p.parseAssignment())
			}
		}
		p.consumeOp(")", "expected ')' after assignments")
		return &ast.ProcAssignment{Span: p.spanFrom(start), Name: name, Assignments: assigns}
	}

	p.advance()
	args := p.parseDataList()
	p.consumeOp(")", "expected ')' after arguments")
	return &ast.ProcInstance{Span: p.spanFrom(start), Name: name, Args: args}
}

// parseSet parses "{ elem, elem }" calling elem for each element.
func (p *Parser) parseSet(elem func()) {
	p.consumeOp("{", "expected '{'")
	if p.matchOp("}") {
		return
	}
	elem()
	for p.matchOp(",") {
		elem()
	}
	p.consumeOp("}", "expected '}'")
}

func (p *Parser) parseNameSet() []ast.Ident {
	var names []ast.Ident
	p.parseSet(func() {
		names = append(names, p.consumeIdent("expected action name"))
	})
	return names
}

func (p *Parser) parseMultiActionName() []ast.Ident {
	names := []ast.Ident{p.consumeIdent("expected action name")}
	for p.matchOp("|") {
		names = append(names, p.consumeIdent("expected action name"))
	}
	return names
}
