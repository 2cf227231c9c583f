// Package typecheck checks that the names used in specifications and
// formulas are declared with the right number of arguments. It does not
// infer data sorts.
package typecheck

import (
	"github.com/emirpasic/gods/sets/hashset"
	"parsecheck/internal/ast"
	"parsecheck/internal/parser"
)

// signatures maps a declared name to the set of arities it is declared with.
type signatures map[string]*hashset.Set

func (s signatures) add(name string, arity int) {
	set, ok := s[name]
	if !ok {
		set = hashset.New()
		s[name] = set
	}
	set.Add(arity)
}

func (s signatures) declared(name string) bool {
	_, ok := s[name]
	return ok
}

func (s signatures) has(name string, arity int) bool {
	set, ok := s[name]
	return ok && set.Contains(arity)
}

func actionSignatures(decls []*ast.ActionDecl) signatures {
	sigs := signatures{}
	for _, d := range decls {
		for _, name := range d.Names {
			sigs.add(name.Value, len(d.Sorts))
		}
	}
	return sigs
}

func checkAction(sigs signatures, name ast.Ident, arity int) error {
	if !sigs.declared(name.Value) {
		return parser.NewError(name.Pos, "undeclared action '%s'", name.Value)
	}
	if !sigs.has(name.Value, arity) {
		return parser.NewError(name.Pos, "action '%s' is not declared with %d parameter(s)", name.Value, arity)
	}
	return nil
}
