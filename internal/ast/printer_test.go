package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(name string) *DataIdent { return &DataIdent{Name: name} }

func num(v string) *DataNumber { return &DataNumber{Value: v} }

func act(name string) *ProcInstance { return &ProcInstance{Name: Ident{Value: name}} }

func nat(name string) *VarDecl {
	return &VarDecl{Name: Ident{Value: name}, Sort: &SortIdent{Name: "Nat"}}
}

func TestDataPrecedence(t *testing.T) {
	tests := []struct {
		name string
		expr DataExpr
		want string
	}{
		{
			"left associative minus keeps right parens",
			&DataBinary{Op: "-", Left: ident("a"), Right: &DataBinary{Op: "-", Left: ident("b"), Right: ident("c")}},
			"a - (b - c)",
		},
		{
			"left associative minus drops left parens",
			&DataBinary{Op: "-", Left: &DataBinary{Op: "-", Left: ident("a"), Right: ident("b")}, Right: ident("c")},
			"a - b - c",
		},
		{
			"product binds tighter than sum",
			&DataBinary{Op: "*", Left: &DataBinary{Op: "+", Left: ident("a"), Right: ident("b")}, Right: ident("c")},
			"(a + b) * c",
		},
		{
			"cons is right associative",
			&DataBinary{Op: "|>", Left: num("1"), Right: &DataBinary{Op: "|>", Left: num("2"), Right: &DataList{}}},
			"1 |> 2 |> []",
		},
		{
			"unary operand",
			&DataUnary{Op: "!", Operand: &DataBinary{Op: "==", Left: ident("x"), Right: num("0")}},
			"!(x == 0)",
		},
		{
			"application head",
			&DataApply{Head: ident("f"), Args: []DataExpr{ident("x"), num("1")}},
			"f(x, 1)",
		},
		{
			"binder groups variables",
			&DataBinder{Kind: "forall", Vars: []*VarDecl{nat("m"), nat("n")}, Body: &DataBinary{Op: ">=", Left: ident("m"), Right: num("0")}},
			"forall m, n: Nat. m >= 0",
		},
		{
			"binder under conjunction",
			&DataBinary{Op: "&&", Left: &DataBinder{Kind: "exists", Vars: []*VarDecl{nat("n")}, Body: ident("b")}, Right: ident("c")},
			"(exists n: Nat. b) && c",
		},
		{
			"empty bag",
			&DataBag{},
			"{:}",
		},
		{
			"comprehension",
			&DataComprehension{Var: nat("n"), Body: &DataBinary{Op: "<", Left: ident("n"), Right: num("3")}},
			"{ n: Nat | n < 3 }",
		},
		{
			"where clause",
			&DataWhere{Body: ident("x"), Assignments: []*Assignment{{Name: Ident{Value: "x"}, Value: num("1")}}},
			"x whr x = 1 end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Printer{}.Data(tt.expr))
		})
	}
}

func TestProcPrecedence(t *testing.T) {
	choice := &ProcBinary{Op: "+", Left: act("a"), Right: act("b")}

	assert.Equal(t, "(a + b) . c", Print(&ProcBinary{Op: ".", Left: choice, Right: act("c")}))
	assert.Equal(t, "a . b . c", Print(&ProcBinary{Op: ".", Left: act("a"), Right: &ProcBinary{Op: ".", Left: act("b"), Right: act("c")}}))
	assert.Equal(t, "(a . b) . c", Print(&ProcBinary{Op: ".", Left: &ProcBinary{Op: ".", Left: act("a"), Right: act("b")}, Right: act("c")}))
	assert.Equal(t, "sum n: Nat. a(n) . P", Print(&ProcSum{
		Vars: []*VarDecl{nat("n")},
		Body: &ProcBinary{Op: ".", Left: &ProcInstance{Name: Ident{Value: "a"}, Args: []DataExpr{ident("n")}}, Right: act("P")},
	}))
	assert.Equal(t, "b -> a <> delta", Print(&ProcCond{Cond: ident("b"), Then: act("a"), Else: &ProcConst{Name: "delta"}}))
	assert.Equal(t, "(b -> a) . c", Print(&ProcBinary{Op: ".", Left: &ProcCond{Cond: ident("b"), Then: act("a")}, Right: act("c")}))
	assert.Equal(t, "allow({a | b, c}, P)", Print(&ProcAllow{
		MultiActions: [][]Ident{{{Value: "a"}, {Value: "b"}}, {{Value: "c"}}},
		Body:         act("P"),
	}))
	assert.Equal(t, "comm({a | b -> c}, P || Q)", Print(&ProcComm{
		Rules: []*CommRule{{Lhs: []Ident{{Value: "a"}, {Value: "b"}}, Rhs: Ident{Value: "c"}}},
		Body:  &ProcBinary{Op: "||", Left: act("P"), Right: act("Q")},
	}))
}

func TestFullParens(t *testing.T) {
	expr := &ProcBinary{Op: "+", Left: &ProcBinary{Op: ".", Left: act("a"), Right: act("b")}, Right: act("c")}

	assert.Equal(t, "a . b + c", Printer{}.Proc(expr))
	assert.Equal(t, "(a . b) + c", Printer{FullParens: true}.Proc(expr))
}

func TestStateFormulas(t *testing.T) {
	a := &RegAct{Act: &ActMulti{Actions: []*ActionInstance{{Name: Ident{Value: "a"}}}}}
	tests := []struct {
		name string
		f    StateFrm
		want string
	}{
		{
			"box of iteration",
			&StateModal{Box: true, Reg: &RegIter{Op: "*", Body: &RegAct{Act: &ActConst{Value: true}}}, Body: &StateConst{Value: false}},
			"[true*]false",
		},
		{
			"compound action formula is bracketed under iteration",
			&StateModal{Reg: &RegIter{Op: "*", Body: &RegAct{Act: &ActNot{Body: &ActConst{Value: true}}}}, Body: &StateConst{Value: true}},
			"<(!true)*>true",
		},
		{
			"compound action formula alone",
			&StateModal{Box: true, Reg: &RegAct{Act: &ActBinary{Op: "||", Left: &ActConst{Value: true}, Right: &ActConst{Value: false}}}, Body: &StateConst{Value: true}},
			"[true || false]true",
		},
		{
			"modal body binds tightly",
			&StateModal{Box: true, Reg: a, Body: &StateBinary{Op: "&&", Left: &StateConst{Value: true}, Right: &StateConst{Value: false}}},
			"[a](true && false)",
		},
		{
			"fixpoint with parameter",
			&StateFixpoint{
				Kind:   "nu",
				Name:   Ident{Value: "X"},
				Params: []*FixpointParam{{Var: nat("n"), Init: num("0")}},
				Body:   &StateModal{Box: true, Reg: a, Body: &StateVar{Name: Ident{Value: "X"}, Args: []DataExpr{&DataBinary{Op: "+", Left: ident("n"), Right: num("1")}}}},
			},
			"nu X(n: Nat = 0). [a]X(n + 1)",
		},
		{
			"fixpoint under conjunction",
			&StateBinary{Op: "&&", Left: &StateFixpoint{Kind: "mu", Name: Ident{Value: "Y"}, Body: &StateVar{Name: Ident{Value: "Y"}}}, Right: &StateConst{Value: true}},
			"(mu Y. Y) && true",
		},
		{
			"quantitative sum and scaling",
			&StateBinary{Op: "+", Left: &StateConstMult{Factor: num("2"), Body: &StateVal{Expr: ident("x")}}, Right: &StateMinus{Body: &StateNumber{Value: "inf"}}},
			"2 * val(x) + -inf",
		},
		{
			"delay with time",
			&StateDelay{Kind: "delay", Time: num("3")},
			"delay @ 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Printer{}.State(tt.f))
		})
	}
}

func TestSortPrinting(t *testing.T) {
	fn := &FunctionSort{Domain: []SortExpr{&SortIdent{Name: "Nat"}, &ContainerSort{Kind: "List", Elem: &SortIdent{Name: "Bool"}}}, Codomain: &SortIdent{Name: "Bool"}}
	assert.Equal(t, "Nat # List(Bool) -> Bool", Print(fn))

	st := &StructSort{Constructors: []*StructCons{
		{Name: Ident{Value: "empty"}, Recognizer: "is_empty"},
		{Name: Ident{Value: "cons"}, Projections: []*StructProj{{Name: "head", Sort: &SortIdent{Name: "Nat"}}, {Sort: &SortIdent{Name: "Nat"}}}},
	}}
	assert.Equal(t, "struct empty?is_empty | cons(head: Nat, Nat)", Print(st))
}

func TestSpecificationLayout(t *testing.T) {
	spec := &ProcessSpecification{Sections: []*Section{
		{Keyword: "act", Decls: []Decl{&ActionDecl{Names: []Ident{{Value: "a"}, {Value: "b"}}, Sorts: []SortExpr{&SortIdent{Name: "Nat"}}}}},
		{Keyword: "proc", Decls: []Decl{
			&ProcDecl{Name: Ident{Value: "P"}, Body: act("a")},
			&ProcDecl{Name: Ident{Value: "Q"}, Params: []*VarDecl{nat("n")}, Body: act("b")},
		}},
		{Keyword: "init", Decls: []Decl{&InitDecl{Proc: act("P")}}},
	}}

	want := "act  a, b: Nat;\n\nproc P = a;\n     Q(n: Nat) = b;\n\ninit P;"
	assert.Equal(t, want, spec.String())
}

func TestFormulaSpecificationLayout(t *testing.T) {
	bare := &StateFormulaSpecification{Bare: true, Formula: &StateConst{Value: true}}
	assert.Equal(t, "true", Print(bare))

	spec := &StateFormulaSpecification{Formula: &StateConst{Value: true}}
	assert.Equal(t, "form true;", Print(spec))
}

func TestNodeTypeString(t *testing.T) {
	assert.Equal(t, "STATE_FIXPOINT", (&StateFixpoint{}).NodeType().String())
	assert.Equal(t, "NodeType(?)", NodeType(9999).String())
	assert.Equal(t, "NodeType(?)", NodeType(-1).String())
}
