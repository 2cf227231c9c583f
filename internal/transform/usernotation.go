package transform

import (
	"strings"

	"parsecheck/internal/ast"
)

// TranslateUserNotation rewrites data shorthands into core notation: list
// enumerations become "|>" chains, "x != y" becomes "!(x == y)" and numerals
// lose leading zeros. Equations in the specification are rewritten too.
func TranslateUserNotation(spec *ast.StateFormulaSpecification) *ast.StateFormulaSpecification {
	r := rewriter{data: userNotation}

	out := *spec
	out.Formula = r.State(spec.Formula)
	out.Sections = make([]*ast.Section, len(spec.Sections))
	for i, sec := range spec.Sections {
		if sec.Keyword != "eqn" {
			out.Sections[i] = sec
			continue
		}
		c := *sec
		c.Decls = make([]ast.Decl, len(sec.Decls))
		for j, d := range sec.Decls {
			eqn, ok := d.(*ast.EqnDecl)
			if !ok {
				c.Decls[j] = d
				continue
			}
			ce := *eqn
			if eqn.Condition != nil {
				ce.Condition = r.Data(eqn.Condition)
			}
			ce.Lhs = r.Data(eqn.Lhs)
			ce.Rhs = r.Data(eqn.Rhs)
			c.Decls[j] = &ce
		}
		out.Sections[i] = &c
	}
	return &out
}

func userNotation(e ast.DataExpr) ast.DataExpr {
	switch e := e.(type) {
	case *ast.DataList:
		if len(e.Elems) == 0 {
			return e
		}
		var list ast.DataExpr = &ast.DataList{Span: ast.Span{Pos: e.EndPos, EndPos: e.EndPos}}
		for i := len(e.Elems) - 1; i >= 0; i-- {
			list = &ast.DataBinary{Span: e.Span, Op: "|>", Left: e.Elems[i], Right: list}
		}
		return list

	case *ast.DataBinary:
		if e.Op != "!=" {
			return e
		}
		eq := *e
		eq.Op = "=="
		return &ast.DataUnary{Span: e.Span, Op: "!", Operand: &eq}

	case *ast.DataNumber:
		trimmed := strings.TrimLeft(e.Value, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		if trimmed == e.Value {
			return e
		}
		c := *e
		c.Value = trimmed
		return &c
	}
	return e
}
