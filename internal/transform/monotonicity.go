package transform

import (
	"parsecheck/internal/ast"
	"parsecheck/internal/parser"
)

// CheckMonotonicity reports the first fixpoint variable that occurs under a
// different number of negations than its binder, counted modulo two.
// Negation, unary minus and the left side of an implication flip polarity.
func CheckMonotonicity(spec *ast.StateFormulaSpecification) error {
	return monotone(spec.Formula, map[string]bool{}, true)
}

func monotone(f ast.StateFrm, bound map[string]bool, positive bool) error {
	switch f := f.(type) {
	case *ast.StateVar:
		if polarity, ok := bound[f.Name.Value]; ok && polarity != positive {
			return parser.NewError(f.Name.Pos, "fixpoint variable '%s' occurs under an odd number of negations", f.Name.Value)
		}
	case *ast.StateFixpoint:
		inner := make(map[string]bool, len(bound)+1)
		for k, v := range bound {
			inner[k] = v
		}
		inner[f.Name.Value] = positive
		return monotone(f.Body, inner, positive)
	case *ast.StateNot:
		return monotone(f.Body, bound, !positive)
	case *ast.StateMinus:
		return monotone(f.Body, bound, !positive)
	case *ast.StateBinary:
		left := positive
		if f.Op == "=>" {
			left = !positive
		}
		if err := monotone(f.Left, bound, left); err != nil {
			return err
		}
		return monotone(f.Right, bound, positive)
	case *ast.StateModal:
		return monotone(f.Body, bound, positive)
	case *ast.StateQuant:
		return monotone(f.Body, bound, positive)
	case *ast.StateConstMult:
		return monotone(f.Body, bound, positive)
	}
	return nil
}
