package transform

import (
	"parsecheck/internal/ast"
)

// TranslateRegularFormulas removes regular formulas from modalities so that
// every box and diamond ranges over a single action formula:
//
//	[nil]f     = f
//	[R1.R2]f   = [R1][R2]f
//	[R1 + R2]f = [R1]f && [R2]f
//	[R*]f      = nu X. f && [R]X
//	[R+]f      = [R][R*]f
//
// Diamonds translate dually with || and mu.
func TranslateRegularFormulas(spec *ast.StateFormulaSpecification) *ast.StateFormulaSpecification {
	t := &regularTranslator{names: newNameGenerator(spec.Formula)}
	out := *spec
	out.Formula = t.state(spec.Formula)
	return &out
}

type regularTranslator struct {
	names *nameGenerator
}

func (t *regularTranslator) state(f ast.StateFrm) ast.StateFrm {
	switch f := f.(type) {
	case *ast.StateModal:
		return t.modal(f.Span, f.Box, f.Reg, t.state(f.Body))
	case *ast.StateNot:
		c := *f
		c.Body = t.state(f.Body)
		return &c
	case *ast.StateMinus:
		c := *f
		c.Body = t.state(f.Body)
		return &c
	case *ast.StateBinary:
		c := *f
		c.Left = t.state(f.Left)
		c.Right = t.state(f.Right)
		return &c
	case *ast.StateQuant:
		c := *f
		c.Body = t.state(f.Body)
		return &c
	case *ast.StateFixpoint:
		c := *f
		c.Body = t.state(f.Body)
		return &c
	case *ast.StateConstMult:
		c := *f
		c.Body = t.state(f.Body)
		return &c
	}
	return f
}

func (t *regularTranslator) modal(span ast.Span, box bool, reg ast.RegFrm, body ast.StateFrm) ast.StateFrm {
	switch r := reg.(type) {
	case *ast.RegNil:
		return body

	case *ast.RegBinary:
		if r.Op == "." {
			return t.modal(span, box, r.Left, t.modal(span, box, r.Right, body))
		}
		return &ast.StateBinary{
			Span:  span,
			Op:    junction(box),
			Left:  t.modal(span, box, r.Left, body),
			Right: t.modal(span, box, r.Right, body),
		}

	case *ast.RegIter:
		if r.Op == "+" {
			star := &ast.RegIter{Span: r.Span, Op: "*", Body: r.Body}
			return t.modal(span, box, r.Body, t.modal(span, box, star, body))
		}

		name := ast.Ident{Span: r.Span, Value: t.names.fresh("X")}
		kind := "nu"
		if !box {
			kind = "mu"
		}
		return &ast.StateFixpoint{
			Span: span,
			Kind: kind,
			Name: name,
			Body: &ast.StateBinary{
				Span:  span,
				Op:    junction(box),
				Left:  body,
				Right: t.modal(span, box, r.Body, &ast.StateVar{Span: name.Span, Name: name}),
			},
		}
	}

	return &ast.StateModal{Span: span, Box: box, Reg: reg, Body: body}
}

func junction(box bool) string {
	if box {
		return "&&"
	}
	return "||"
}
