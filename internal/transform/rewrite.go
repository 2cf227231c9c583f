// Package transform holds the optional rewrites applied to parsed state
// formulas: user notation, regular formulas, name clashes, and the
// monotonicity check.
package transform

import (
	"strconv"

	"github.com/emirpasic/gods/sets/hashset"
	"parsecheck/internal/ast"
)

// rewriter rebuilds a formula bottom-up, applying data to every data
// expression it meets. Nodes are copied, never modified in place.
type rewriter struct {
	data func(ast.DataExpr) ast.DataExpr
}

func (r rewriter) State(f ast.StateFrm) ast.StateFrm {
	switch f := f.(type) {
	case *ast.StateVal:
		c := *f
		c.Expr = r.Data(f.Expr)
		return &c
	case *ast.StateDelay:
		c := *f
		if f.Time != nil {
			c.Time = r.Data(f.Time)
		}
		return &c
	case *ast.StateVar:
		c := *f
		c.Args = r.dataList(f.Args)
		return &c
	case *ast.StateNot:
		c := *f
		c.Body = r.State(f.Body)
		return &c
	case *ast.StateMinus:
		c := *f
		c.Body = r.State(f.Body)
		return &c
	case *ast.StateBinary:
		c := *f
		c.Left = r.State(f.Left)
		c.Right = r.State(f.Right)
		return &c
	case *ast.StateModal:
		c := *f
		c.Reg = r.Reg(f.Reg)
		c.Body = r.State(f.Body)
		return &c
	case *ast.StateQuant:
		c := *f
		c.Body = r.State(f.Body)
		return &c
	case *ast.StateFixpoint:
		c := *f
		c.Params = make([]*ast.FixpointParam, len(f.Params))
		for i, fp := range f.Params {
			cp := *fp
			cp.Init = r.Data(fp.Init)
			c.Params[i] = &cp
		}
		c.Body = r.State(f.Body)
		return &c
	case *ast.StateConstMult:
		c := *f
		c.Factor = r.Data(f.Factor)
		c.Body = r.State(f.Body)
		return &c
	}
	return f
}

func (r rewriter) Reg(reg ast.RegFrm) ast.RegFrm {
	switch reg := reg.(type) {
	case *ast.RegAct:
		c := *reg
		c.Act = r.Act(reg.Act)
		return &c
	case *ast.RegBinary:
		c := *reg
		c.Left = r.Reg(reg.Left)
		c.Right = r.Reg(reg.Right)
		return &c
	case *ast.RegIter:
		c := *reg
		c.Body = r.Reg(reg.Body)
		return &c
	}
	return reg
}

func (r rewriter) Act(a ast.ActFrm) ast.ActFrm {
	switch a := a.(type) {
	case *ast.ActMulti:
		c := *a
		c.Actions = make([]*ast.ActionInstance, len(a.Actions))
		for i, ai := range a.Actions {
			ci := *ai
			ci.Args = r.dataList(ai.Args)
			c.Actions[i] = &ci
		}
		return &c
	case *ast.ActVal:
		c := *a
		c.Expr = r.Data(a.Expr)
		return &c
	case *ast.ActNot:
		c := *a
		c.Body = r.Act(a.Body)
		return &c
	case *ast.ActBinary:
		c := *a
		c.Left = r.Act(a.Left)
		c.Right = r.Act(a.Right)
		return &c
	case *ast.ActQuant:
		c := *a
		c.Body = r.Act(a.Body)
		return &c
	case *ast.ActAt:
		c := *a
		c.Body = r.Act(a.Body)
		c.Time = r.Data(a.Time)
		return &c
	}
	return a
}

func (r rewriter) dataList(es []ast.DataExpr) []ast.DataExpr {
	if es == nil {
		return nil
	}
	out := make([]ast.DataExpr, len(es))
	for i, e := range es {
		out[i] = r.Data(e)
	}
	return out
}

func (r rewriter) Data(e ast.DataExpr) ast.DataExpr {
	switch e := e.(type) {
	case *ast.DataApply:
		c := *e
		c.Head = r.Data(e.Head)
		c.Args = r.dataList(e.Args)
		return r.data(&c)
	case *ast.DataUnary:
		c := *e
		c.Operand = r.Data(e.Operand)
		return r.data(&c)
	case *ast.DataBinary:
		c := *e
		c.Left = r.Data(e.Left)
		c.Right = r.Data(e.Right)
		return r.data(&c)
	case *ast.DataBinder:
		c := *e
		c.Body = r.Data(e.Body)
		return r.data(&c)
	case *ast.DataWhere:
		c := *e
		c.Body = r.Data(e.Body)
		c.Assignments = make([]*ast.Assignment, len(e.Assignments))
		for i, a := range e.Assignments {
			ca := *a
			ca.Value = r.Data(a.Value)
			c.Assignments[i] = &ca
		}
		return r.data(&c)
	case *ast.DataList:
		c := *e
		c.Elems = r.dataList(e.Elems)
		return r.data(&c)
	case *ast.DataSet:
		c := *e
		c.Elems = r.dataList(e.Elems)
		return r.data(&c)
	case *ast.DataBag:
		c := *e
		c.Elems = make([]*ast.BagElem, len(e.Elems))
		for i, el := range e.Elems {
			ce := *el
			ce.Elem = r.Data(el.Elem)
			ce.Count = r.Data(el.Count)
			c.Elems[i] = &ce
		}
		return r.data(&c)
	case *ast.DataComprehension:
		c := *e
		c.Body = r.Data(e.Body)
		return r.data(&c)
	}
	return r.data(e)
}

// nameGenerator hands out names that do not occur in a formula.
type nameGenerator struct {
	used *hashset.Set
}

func newNameGenerator(f ast.StateFrm) *nameGenerator {
	g := &nameGenerator{used: hashset.New()}
	g.collect(f)
	return g
}

func (g *nameGenerator) fresh(base string) string {
	name := base
	for i := 1; g.used.Contains(name); i++ {
		name = base + strconv.Itoa(i)
	}
	g.used.Add(name)
	return name
}

func (g *nameGenerator) collect(f ast.StateFrm) {
	collectData := rewriter{data: func(e ast.DataExpr) ast.DataExpr {
		switch e := e.(type) {
		case *ast.DataIdent:
			g.used.Add(e.Name)
		case *ast.DataBinder:
			g.addVars(e.Vars)
		case *ast.DataComprehension:
			g.addVars([]*ast.VarDecl{e.Var})
		}
		return e
	}}
	collectData.State(f)
	g.collectBinders(f)
}

func (g *nameGenerator) addVars(vars []*ast.VarDecl) {
	for _, v := range vars {
		g.used.Add(v.Name.Value)
	}
}

func (g *nameGenerator) collectBinders(f ast.StateFrm) {
	switch f := f.(type) {
	case *ast.StateVar:
		g.used.Add(f.Name.Value)
	case *ast.StateFixpoint:
		g.used.Add(f.Name.Value)
		for _, fp := range f.Params {
			g.used.Add(fp.Var.Name.Value)
		}
		g.collectBinders(f.Body)
	case *ast.StateQuant:
		g.addVars(f.Vars)
		g.collectBinders(f.Body)
	case *ast.StateNot:
		g.collectBinders(f.Body)
	case *ast.StateMinus:
		g.collectBinders(f.Body)
	case *ast.StateConstMult:
		g.collectBinders(f.Body)
	case *ast.StateModal:
		g.collectBinders(f.Body)
	case *ast.StateBinary:
		g.collectBinders(f.Left)
		g.collectBinders(f.Right)
	}
}
