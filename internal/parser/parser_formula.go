package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/grammar"
	"parsecheck/internal/ast"
)

// Action formulas

func (p *Parser) parseActFrm() ast.ActFrm {
	return p.parseActPratt(ast.ActPrecQuant)
}

func (p *Parser) parseActPratt(minPrec int) ast.ActFrm {
	start := p.peek()
	frm := p.parseActPrefix()

	for {
		tok := p.peek()

		if isOp(tok, "@") && ast.ActPrecAt >= minPrec {
			p.advance()
			at := p.parseDataUnit()
			frm = &ast.ActAt{Span: p.spanFrom(start), Body: frm, Time: at}
			continue
		}

		op, ok := ast.ActOperators[tok.Value]
		if tok.Type != grammar.OperatorToken || !ok || op.Prec < minPrec {
			break
		}

		p.advance()
		right := p.parseActPratt(op.Prec)
		frm = &ast.ActBinary{Span: p.spanFrom(start), Op: tok.Value, Left: frm, Right: right}
	}

	return frm
}

func (p *Parser) parseActPrefix() ast.ActFrm {
	start := p.peek()

	if p.checkKeyword("forall", "exists") {
		kind := p.advance().Value
		vars := p.parseVarsDecl()
		p.consumeOp(".", "expected '.' after "+kind+" variables")
		body := p.parseActPratt(ast.ActPrecQuant)
		return &ast.ActQuant{Span: p.spanFrom(start), Kind: kind, Vars: vars, Body: body}
	}

	if p.matchOp("!") {
		body := p.parseActPrefix()
		return &ast.ActNot{Span: p.spanFrom(start), Body: body}
	}

	return p.parseActPrimary()
}

func (p *Parser) parseActPrimary() ast.ActFrm {
	start := p.peek()

	switch {
	case isKeyword(start, "true"), isKeyword(start, "false"):
		p.advance()
		return &ast.ActConst{Span: p.spanAt(start), Value: start.Value == "true"}

	case isKeyword(start, "tau"):
		p.advance()
		return &ast.ActMulti{Span: p.spanAt(start)}

	case isKeyword(start, "val"):
		p.advance()
		p.consumeOp("(", "expected '(' after val")
		expr := p.parseDataExpr()
		p.consumeOp(")", "expected ')' after val expression")
		return &ast.ActVal{Span: p.spanFrom(start), Expr: expr}

	case isOp(start, "("):
		p.advance()
		frm := p.parseActFrm()
		p.consumeOp(")", "expected ')' after action formula")
		return frm

	case isName(start):
		multi := &ast.ActMulti{Actions: []*ast.ActionInstance{p.parseActionInstance()}}
		for p.checkOp("|") && isName(p.peekAt(1)) {
			p.advance()
			multi.Actions = append(multi.Actions, p.parseActionInstance())
		}
		multi.Span = p.spanFrom(start)
		return multi
	}

	return p.bad("expected action formula")
}

func (p *Parser) parseActionInstance() *ast.ActionInstance {
	start := p.peek()
	ai := &ast.ActionInstance{Name: p.consumeIdent("expected action name")}
	if p.matchOp("(") {
		ai.Args = p.parseDataList()
		p.consumeOp(")", "expected ')' after action arguments")
	}
	ai.Span = p.spanFrom(start)
	return ai
}

// Regular formulas

func (p *Parser) parseRegFrm() ast.RegFrm {
	return p.parseRegPratt(1)
}

func (p *Parser) parseRegPratt(minPrec int) ast.RegFrm {
	start := p.peek()
	frm := p.parseRegPostfix()

	for {
		tok := p.peek()
		op, ok := ast.RegOperators[tok.Value]
		if tok.Type != grammar.OperatorToken || !ok || op.Prec < minPrec {
			break
		}

		p.advance()
		next := op.Prec + 1
		if op.Right {
			next = op.Prec
		}
		right := p.parseRegPratt(next)
		frm = &ast.RegBinary{Span: p.spanFrom(start), Op: tok.Value, Left: frm, Right: right}
	}

	return frm
}

// parseRegPostfix handles "R*" and "R+". A "+" is an iteration only when
// the token after it cannot start another regular formula.
func (p *Parser) parseRegPostfix() ast.RegFrm {
	start := p.peek()
	frm := p.parseRegPrimary()

	for {
		if p.checkOp("*") || (p.checkOp("+") && !startsRegFrm(p.peekAt(1))) {
			op := p.advance().Value
			frm = &ast.RegIter{Span: p.spanFrom(start), Op: op, Body: frm}
			continue
		}
		return frm
	}
}

func startsRegFrm(tok lexer.Token) bool {
	if isName(tok) || isOp(tok, "(") || isOp(tok, "!") {
		return true
	}
	if tok.Type == grammar.IdentToken {
		switch tok.Value {
		case "nil", "true", "false", "val", "tau", "forall", "exists":
			return true
		}
	}
	return false
}

func (p *Parser) parseRegPrimary() ast.RegFrm {
	start := p.peek()

	if p.matchKeyword("nil") {
		return &ast.RegNil{Span: p.spanAt(start)}
	}

	s := p.mark()
	act := p.parseActFrm()
	if !p.failedSince(s) || !isOp(start, "(") {
		return &ast.RegAct{Span: p.spanFrom(start), Act: act}
	}

	p.reset(s)
	p.advance()
	frm := p.parseRegFrm()
	p.consumeOp(")", "expected ')' after regular formula")
	return frm
}

// State formulas

func (p *Parser) parseStateFrm() ast.StateFrm {
	return p.parseStatePratt(ast.StatePrecBinder)
}

func (p *Parser) parseStatePratt(minPrec int) ast.StateFrm {
	start := p.peek()
	frm := p.parseStatePrefix()

	for {
		tok := p.peek()
		op, ok := ast.StateOperators[tok.Value]
		if tok.Type != grammar.OperatorToken || !ok || op.Prec < minPrec {
			break
		}

		if tok.Value == "+" {
			p.requireQuantitative(tok)
		}

		p.advance()
		next := op.Prec + 1
		if op.Right {
			next = op.Prec
		}
		right := p.parseStatePratt(next)
		frm = &ast.StateBinary{Span: p.spanFrom(start), Op: tok.Value, Left: frm, Right: right}
	}

	return frm
}

func (p *Parser) requireQuantitative(tok lexer.Token) {
	if p.quantitative {
		return
	}
	kind := "operator"
	if tok.Type == grammar.NumberToken {
		kind = "numeric constant"
	}
	p.errorAt(tok, kind+" '"+tok.Value+"' is only available in quantitative formulas")
}

func (p *Parser) parseStatePrefix() ast.StateFrm {
	start := p.peek()

	switch {
	case isKeyword(start, "mu"), isKeyword(start, "nu"):
		return p.parseFixpoint()

	case isKeyword(start, "inf"), isKeyword(start, "sup"), isKeyword(start, "sum"):
		p.requireQuantitative(start)
		fallthrough

	case isKeyword(start, "forall"), isKeyword(start, "exists"):
		p.advance()
		vars := p.parseVarsDecl()
		p.consumeOp(".", "expected '.' after "+start.Value+" variables")
		body := p.parseStatePratt(ast.StatePrecBinder)
		return &ast.StateQuant{Span: p.spanFrom(start), Kind: start.Value, Vars: vars, Body: body}

	case isOp(start, "!"):
		p.advance()
		body := p.parseStatePrefix()
		return &ast.StateNot{Span: p.spanFrom(start), Body: body}

	case isOp(start, "-"):
		p.requireQuantitative(start)
		p.advance()
		body := p.parseStatePrefix()
		return &ast.StateMinus{Span: p.spanFrom(start), Body: body}

	case isOp(start, "["), isOp(start, "<"):
		p.advance()
		reg := p.parseRegFrm()
		box := start.Value == "["
		if box {
			p.consumeOp("]", "expected ']' after regular formula")
		} else {
			p.consumeOp(">", "expected '>' after regular formula")
		}
		body := p.parseStatePrefix()
		return &ast.StateModal{Span: p.spanFrom(start), Box: box, Reg: reg, Body: body}

	case start.Type == grammar.NumberToken:
		p.requireQuantitative(start)
		p.advance()
		number := &ast.DataNumber{Span: p.spanAt(start), Value: start.Value}
		if p.matchOp("*") {
			body := p.parseStatePrefix()
			return &ast.StateConstMult{Span: p.spanFrom(start), Factor: number, Body: body}
		}
		return &ast.StateNumber{Span: number.Span, Value: start.Value}
	}

	return p.parseStatePrimary()
}

func (p *Parser) parseFixpoint() ast.StateFrm {
	start := p.advance()
	fix := &ast.StateFixpoint{Kind: start.Value}
	fix.Name = p.consumeIdent("expected fixpoint variable after " + start.Value)

	if p.matchOp("(") {
		fix.Params = append(fix.Params, p.parseFixpointParam())
		for p.matchOp(",") {
			fix.Params = append(fix.Params, p.parseFixpointParam())
		}
		p.consumeOp(")", "expected ')' after fixpoint parameters")
	}

	p.consumeOp(".", "expected '.' after fixpoint variable")
	fix.Body = p.parseStatePratt(ast.StatePrecBinder)
	fix.Span = p.spanFrom(start)
	return fix
}

func (p *Parser) parseFixpointParam() *ast.FixpointParam {
	start := p.peek()
	name := p.consumeIdent("expected parameter name")
	p.consumeOp(":", "expected ':' after parameter name")
	sort := p.parseSort()
	p.consumeOp("=", "expected '=' and an initial value")
	init := p.parseDataExpr()
	return &ast.FixpointParam{
		Span: p.spanFrom(start),
		Var:  &ast.VarDecl{Span: ast.Span{Pos: name.Pos, EndPos: sort.NodeEndPos()}, Name: name, Sort: sort},
		Init: init,
	}
}

func (p *Parser) parseStatePrimary() ast.StateFrm {
	start := p.peek()

	switch {
	case isKeyword(start, "true"), isKeyword(start, "false"):
		p.advance()
		return &ast.StateConst{Span: p.spanAt(start), Value: start.Value == "true"}

	case isKeyword(start, "val"):
		p.advance()
		p.consumeOp("(", "expected '(' after val")
		expr := p.parseDataExpr()
		p.consumeOp(")", "expected ')' after val expression")
		return &ast.StateVal{Span: p.spanFrom(start), Expr: expr}

	case isKeyword(start, "delay"), isKeyword(start, "yaled"):
		p.advance()
		d := &ast.StateDelay{Kind: start.Value}
		if p.matchOp("@") {
			d.Time = p.parseDataUnit()
		}
		d.Span = p.spanFrom(start)
		return d

	case isOp(start, "("):
		p.advance()
		frm := p.parseStateFrm()
		p.consumeOp(")", "expected ')' after state formula")
		return frm

	case isName(start):
		v := &ast.StateVar{Name: p.consumeIdent("expected fixpoint variable")}
		if p.matchOp("(") {
			v.Args = p.parseDataList()
			p.consumeOp(")", "expected ')' after arguments")
		}
		v.Span = p.spanFrom(start)
		return v
	}

	return p.bad("expected state formula")
}
