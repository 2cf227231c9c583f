package typecheck

import (
	"github.com/emirpasic/gods/sets/hashset"
	"parsecheck/internal/ast"
	"parsecheck/internal/parser"
)

type processChecker struct {
	actions   signatures
	processes map[string]*ast.ProcDecl
}

// CheckProcessSpecification checks that actions and process references are
// declared and applied to the declared number of arguments.
func CheckProcessSpecification(spec *ast.ProcessSpecification) error {
	c := &processChecker{
		actions:   actionSignatures(spec.Actions()),
		processes: map[string]*ast.ProcDecl{},
	}

	for _, proc := range spec.Processes() {
		if _, dup := c.processes[proc.Name.Value]; dup {
			return parser.NewError(proc.Name.Pos, "process '%s' is defined twice", proc.Name.Value)
		}
		if c.actions.declared(proc.Name.Value) {
			return parser.NewError(proc.Name.Pos, "'%s' is declared both as an action and as a process", proc.Name.Value)
		}
		c.processes[proc.Name.Value] = proc
	}

	for _, proc := range spec.Processes() {
		if err := c.proc(proc.Body); err != nil {
			return err
		}
	}

	if init := spec.Init(); init != nil {
		return c.proc(init)
	}
	return nil
}

func (c *processChecker) proc(e ast.ProcExpr) error {
	switch e := e.(type) {
	case *ast.ProcInstance:
		if c.actions.declared(e.Name.Value) {
			return checkAction(c.actions, e.Name, len(e.Args))
		}
		decl, ok := c.processes[e.Name.Value]
		if !ok {
			return parser.NewError(e.Name.Pos, "undeclared action or process '%s'", e.Name.Value)
		}
		if len(decl.Params) != len(e.Args) {
			return parser.NewError(e.Name.Pos, "process '%s' expects %d argument(s), got %d", e.Name.Value, len(decl.Params), len(e.Args))
		}
	case *ast.ProcAssignment:
		decl, ok := c.processes[e.Name.Value]
		if !ok {
			return parser.NewError(e.Name.Pos, "undeclared process '%s'", e.Name.Value)
		}
		params := hashset.New()
		for _, param := range decl.Params {
			params.Add(param.Name.Value)
		}
		for _, a := range e.Assignments {
			if !params.Contains(a.Name.Value) {
				return parser.NewError(a.Name.Pos, "'%s' is not a parameter of process '%s'", a.Name.Value, e.Name.Value)
			}
		}
	case *ast.ProcBinary:
		if err := c.proc(e.Left); err != nil {
			return err
		}
		return c.proc(e.Right)
	case *ast.ProcSum:
		return c.proc(e.Body)
	case *ast.ProcDist:
		return c.proc(e.Body)
	case *ast.ProcCond:
		if err := c.proc(e.Then); err != nil {
			return err
		}
		if e.Else != nil {
			return c.proc(e.Else)
		}
	case *ast.ProcAt:
		return c.proc(e.Body)
	case *ast.ProcBlock:
		if err := c.names(e.Names); err != nil {
			return err
		}
		return c.proc(e.Body)
	case *ast.ProcAllow:
		for _, multi := range e.MultiActions {
			if err := c.names(multi); err != nil {
				return err
			}
		}
		return c.proc(e.Body)
	case *ast.ProcRename:
		for _, r := range e.Rules {
			if err := c.names([]ast.Ident{r.From, r.To}); err != nil {
				return err
			}
		}
		return c.proc(e.Body)
	case *ast.ProcComm:
		for _, r := range e.Rules {
			if err := c.names(r.Lhs); err != nil {
				return err
			}
			if r.Rhs.Value != "tau" {
				if err := c.names([]ast.Ident{r.Rhs}); err != nil {
					return err
				}
			}
		}
		return c.proc(e.Body)
	}
	return nil
}

func (c *processChecker) names(ids []ast.Ident) error {
	for _, id := range ids {
		if !c.actions.declared(id.Value) {
			return parser.NewError(id.Pos, "undeclared action '%s'", id.Value)
		}
	}
	return nil
}
