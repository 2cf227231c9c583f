package transform

import (
	"parsecheck/internal/ast"
)

// ResolveNameClashes renames fixpoint variables and quantified data
// variables that shadow a binder of the same name further out, so that every
// binder in the result introduces a distinct name.
func ResolveNameClashes(spec *ast.StateFormulaSpecification) *ast.StateFormulaSpecification {
	r := &clashResolver{names: newNameGenerator(spec.Formula)}
	out := *spec
	out.Formula = r.state(spec.Formula, scope{props: map[string]string{}, data: map[string]string{}})
	return &out
}

// scope maps names bound so far to the name they were renamed to. A name
// bound without renaming maps to itself.
type scope struct {
	props map[string]string
	data  map[string]string
}

func (s scope) bindProp(from, to string) scope {
	props := make(map[string]string, len(s.props)+1)
	for k, v := range s.props {
		props[k] = v
	}
	props[from] = to
	return scope{props: props, data: s.data}
}

func (s scope) bindData(from, to string) scope {
	data := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		data[k] = v
	}
	data[from] = to
	return scope{props: s.props, data: data}
}

type clashResolver struct {
	names *nameGenerator
}

func (r *clashResolver) vars(vars []*ast.VarDecl, s scope) ([]*ast.VarDecl, scope) {
	out := make([]*ast.VarDecl, len(vars))
	for i, v := range vars {
		name := v.Name.Value
		if _, clash := s.data[name]; clash {
			name = r.names.fresh(name)
		}
		cv := *v
		cv.Name.Value = name
		out[i] = &cv
		s = s.bindData(v.Name.Value, name)
	}
	return out, s
}

func (r *clashResolver) state(f ast.StateFrm, s scope) ast.StateFrm {
	switch f := f.(type) {
	case *ast.StateVal:
		c := *f
		c.Expr = renameData(f.Expr, s.data)
		return &c
	case *ast.StateDelay:
		c := *f
		if f.Time != nil {
			c.Time = renameData(f.Time, s.data)
		}
		return &c
	case *ast.StateVar:
		c := *f
		if to, ok := s.props[f.Name.Value]; ok {
			c.Name.Value = to
		}
		c.Args = renameDataList(f.Args, s.data)
		return &c
	case *ast.StateNot:
		c := *f
		c.Body = r.state(f.Body, s)
		return &c
	case *ast.StateMinus:
		c := *f
		c.Body = r.state(f.Body, s)
		return &c
	case *ast.StateBinary:
		c := *f
		c.Left = r.state(f.Left, s)
		c.Right = r.state(f.Right, s)
		return &c
	case *ast.StateModal:
		c := *f
		c.Reg = r.reg(f.Reg, s)
		c.Body = r.state(f.Body, s)
		return &c
	case *ast.StateQuant:
		c := *f
		var inner scope
		c.Vars, inner = r.vars(f.Vars, s)
		c.Body = r.state(f.Body, inner)
		return &c
	case *ast.StateConstMult:
		c := *f
		c.Factor = renameData(f.Factor, s.data)
		c.Body = r.state(f.Body, s)
		return &c
	case *ast.StateFixpoint:
		c := *f
		name := f.Name.Value
		if _, clash := s.props[name]; clash {
			name = r.names.fresh(name)
		}
		c.Name.Value = name
		inner := s.bindProp(f.Name.Value, name)

		c.Params = make([]*ast.FixpointParam, len(f.Params))
		for i, fp := range f.Params {
			cp := *fp
			// Initial values are evaluated outside the fixpoint.
			cp.Init = renameData(fp.Init, s.data)
			var vars []*ast.VarDecl
			vars, inner = r.vars([]*ast.VarDecl{fp.Var}, inner)
			cp.Var = vars[0]
			c.Params[i] = &cp
		}
		c.Body = r.state(f.Body, inner)
		return &c
	}
	return f
}

func (r *clashResolver) reg(reg ast.RegFrm, s scope) ast.RegFrm {
	switch reg := reg.(type) {
	case *ast.RegAct:
		c := *reg
		c.Act = r.act(reg.Act, s)
		return &c
	case *ast.RegBinary:
		c := *reg
		c.Left = r.reg(reg.Left, s)
		c.Right = r.reg(reg.Right, s)
		return &c
	case *ast.RegIter:
		c := *reg
		c.Body = r.reg(reg.Body, s)
		return &c
	}
	return reg
}

func (r *clashResolver) act(a ast.ActFrm, s scope) ast.ActFrm {
	switch a := a.(type) {
	case *ast.ActMulti:
		c := *a
		c.Actions = make([]*ast.ActionInstance, len(a.Actions))
		for i, ai := range a.Actions {
			ci := *ai
			ci.Args = renameDataList(ai.Args, s.data)
			c.Actions[i] = &ci
		}
		return &c
	case *ast.ActVal:
		c := *a
		c.Expr = renameData(a.Expr, s.data)
		return &c
	case *ast.ActNot:
		c := *a
		c.Body = r.act(a.Body, s)
		return &c
	case *ast.ActBinary:
		c := *a
		c.Left = r.act(a.Left, s)
		c.Right = r.act(a.Right, s)
		return &c
	case *ast.ActQuant:
		c := *a
		var inner scope
		c.Vars, inner = r.vars(a.Vars, s)
		c.Body = r.act(a.Body, inner)
		return &c
	case *ast.ActAt:
		c := *a
		c.Body = r.act(a.Body, s)
		c.Time = renameData(a.Time, s.data)
		return &c
	}
	return a
}

// renameData substitutes variable names in e according to m. Binders inside
// e shadow the names they bind.
func renameData(e ast.DataExpr, m map[string]string) ast.DataExpr {
	if len(m) == 0 || e == nil {
		return e
	}
	switch e := e.(type) {
	case *ast.DataIdent:
		to, ok := m[e.Name]
		if !ok || to == e.Name {
			return e
		}
		c := *e
		c.Name = to
		return &c
	case *ast.DataApply:
		c := *e
		c.Head = renameData(e.Head, m)
		c.Args = renameDataList(e.Args, m)
		return &c
	case *ast.DataUnary:
		c := *e
		c.Operand = renameData(e.Operand, m)
		return &c
	case *ast.DataBinary:
		c := *e
		c.Left = renameData(e.Left, m)
		c.Right = renameData(e.Right, m)
		return &c
	case *ast.DataBinder:
		c := *e
		c.Body = renameData(e.Body, shadow(m, e.Vars))
		return &c
	case *ast.DataComprehension:
		c := *e
		c.Body = renameData(e.Body, shadow(m, []*ast.VarDecl{e.Var}))
		return &c
	case *ast.DataWhere:
		c := *e
		inner := m
		c.Assignments = make([]*ast.Assignment, len(e.Assignments))
		for i, a := range e.Assignments {
			ca := *a
			ca.Value = renameData(a.Value, m)
			c.Assignments[i] = &ca
			inner = without(inner, a.Name.Value)
		}
		c.Body = renameData(e.Body, inner)
		return &c
	case *ast.DataList:
		c := *e
		c.Elems = renameDataList(e.Elems, m)
		return &c
	case *ast.DataSet:
		c := *e
		c.Elems = renameDataList(e.Elems, m)
		return &c
	case *ast.DataBag:
		c := *e
		c.Elems = make([]*ast.BagElem, len(e.Elems))
		for i, el := range e.Elems {
			ce := *el
			ce.Elem = renameData(el.Elem, m)
			ce.Count = renameData(el.Count, m)
			c.Elems[i] = &ce
		}
		return &c
	}
	return e
}

func renameDataList(es []ast.DataExpr, m map[string]string) []ast.DataExpr {
	if es == nil {
		return nil
	}
	out := make([]ast.DataExpr, len(es))
	for i, e := range es {
		out[i] = renameData(e, m)
	}
	return out
}

func shadow(m map[string]string, vars []*ast.VarDecl) map[string]string {
	for _, v := range vars {
		m = without(m, v.Name.Value)
	}
	return m
}

func without(m map[string]string, name string) map[string]string {
	if _, ok := m[name]; !ok {
		return m
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != name {
			out[k] = v
		}
	}
	return out
}
