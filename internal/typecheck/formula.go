package typecheck

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"parsecheck/internal/ast"
	"parsecheck/internal/lps"
	"parsecheck/internal/parser"
)

type fixpointScope struct {
	name  string
	arity int
}

type formulaChecker struct {
	actions signatures
	scopes  *arraystack.Stack
}

// CheckStateFormulaSpecification checks the actions in the formula against
// the formula's own act section and the model, and checks that every
// fixpoint variable is bound with a matching number of arguments.
func CheckStateFormulaSpecification(spec *ast.StateFormulaSpecification, model *lps.Specification) error {
	c := &formulaChecker{
		actions: actionSignatures(spec.Actions()),
		scopes:  arraystack.New(),
	}
	if model != nil {
		for _, label := range model.ActionLabels {
			c.actions.add(label.Name, label.Arity())
		}
	}

	return c.state(spec.Formula)
}

func (c *formulaChecker) lookup(name string) (fixpointScope, bool) {
	// Values lists the stack from the top down.
	for _, v := range c.scopes.Values() {
		scope := v.(fixpointScope)
		if scope.name == name {
			return scope, true
		}
	}
	return fixpointScope{}, false
}

func (c *formulaChecker) state(f ast.StateFrm) error {
	switch f := f.(type) {
	case *ast.StateVar:
		scope, ok := c.lookup(f.Name.Value)
		if !ok {
			return parser.NewError(f.Name.Pos, "unbound fixpoint variable '%s'", f.Name.Value)
		}
		if scope.arity != len(f.Args) {
			return parser.NewError(f.Name.Pos, "fixpoint variable '%s' expects %d argument(s), got %d", f.Name.Value, scope.arity, len(f.Args))
		}
	case *ast.StateFixpoint:
		c.scopes.Push(fixpointScope{name: f.Name.Value, arity: len(f.Params)})
		defer c.scopes.Pop()
		return c.state(f.Body)
	case *ast.StateNot:
		return c.state(f.Body)
	case *ast.StateMinus:
		return c.state(f.Body)
	case *ast.StateConstMult:
		return c.state(f.Body)
	case *ast.StateQuant:
		return c.state(f.Body)
	case *ast.StateBinary:
		if err := c.state(f.Left); err != nil {
			return err
		}
		return c.state(f.Right)
	case *ast.StateModal:
		if err := c.reg(f.Reg); err != nil {
			return err
		}
		return c.state(f.Body)
	}
	return nil
}

func (c *formulaChecker) reg(r ast.RegFrm) error {
	switch r := r.(type) {
	case *ast.RegAct:
		return c.act(r.Act)
	case *ast.RegBinary:
		if err := c.reg(r.Left); err != nil {
			return err
		}
		return c.reg(r.Right)
	case *ast.RegIter:
		return c.reg(r.Body)
	}
	return nil
}

func (c *formulaChecker) act(a ast.ActFrm) error {
	switch a := a.(type) {
	case *ast.ActMulti:
		for _, ai := range a.Actions {
			if err := checkAction(c.actions, ai.Name, len(ai.Args)); err != nil {
				return err
			}
		}
	case *ast.ActNot:
		return c.act(a.Body)
	case *ast.ActQuant:
		return c.act(a.Body)
	case *ast.ActAt:
		return c.act(a.Body)
	case *ast.ActBinary:
		if err := c.act(a.Left); err != nil {
			return err
		}
		return c.act(a.Right)
	}
	return nil
}
