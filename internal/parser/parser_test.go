package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/ast"
)

func printProcess(t *testing.T, text string) string {
	t.Helper()
	spec, err := ParseProcessSpecification("test.mcrl2", text)
	require.NoError(t, err)
	return ast.Print(spec)
}

func printFormula(t *testing.T, text string, quantitative bool) string {
	t.Helper()
	spec, err := ParseStateFormulaSpecification("test.mcf", text, quantitative)
	require.NoError(t, err)
	return ast.Print(spec)
}

func parseErrors(t *testing.T, err error) ErrorList {
	t.Helper()
	require.Error(t, err)
	list, ok := err.(ErrorList)
	require.True(t, ok, "expected an ErrorList, got %T", err)
	require.NotEmpty(t, list)
	return list
}

func TestProcessExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a.b+c", "a . b + c"},
		{"(a+b).c", "(a + b) . c"},
		{"a . (b . c)", "a . b . c"},
		{"(a . b) . c", "(a . b) . c"},
		{"a || b || c", "a || b || c"},
		{"a | b . c", "a | b . c"},
		{"sum n: Nat . a(n) . P(n+1)", "sum n: Nat. a(n) . P(n + 1)"},
		{"b -> a <> c", "b -> a <> c"},
		{"(n > 0) -> a", "(n > 0) -> a"},
		{"a @ 3 . b", "a @ 3 . b"},
		{"allow({a|b, c}, P || Q)", "allow({a | b, c}, P || Q)"},
		{"hide({a}, rename({b -> c}, P))", "hide({a}, rename({b -> c}, P))"},
		{"comm({a|b -> c}, a || b)", "comm({a | b -> c}, a || b)"},
		{"P(x = 1, y = true)", "P(x = 1, y = true)"},
		{"P()", "P()"},
		{"tau + delta", "tau + delta"},
		{"a(#[1, 2], {}, {:}, {n: Nat | n < 2})", "a(#[1, 2], {}, {:}, { n: Nat | n < 2 })"},
		{"a(x whr x = 1 end)", "a(x whr x = 1 end)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, printProcess(t, tt.input))
		})
	}
}

func TestProcessSpecification(t *testing.T) {
	input := `% a counter
act a, b: Nat;
proc P(n: Nat) = a(n) . P(n + 1);
init P(0);`

	want := "act  a, b: Nat;\n\nproc P(n: Nat) = a(n) . P(n + 1);\n\ninit P(0);"
	assert.Equal(t, want, printProcess(t, input))
}

func TestDataSections(t *testing.T) {
	input := `sort S = struct c1 | c2(x: Nat)?is_c2;
     T;

map  f: Nat # Nat -> Bool;

var  n, m: Nat;

eqn  n > 0 -> f(n, m) = true;
     f(0, m) = false;`

	assert.Equal(t, input, printProcess(t, input))
}

func TestPrintedOutputParsesBack(t *testing.T) {
	inputs := []string{
		"a.(b+c).d",
		"sum b: Bool. (b -> a <> c) . P",
		"act a: List(Nat);\ninit a([1, 2] ++ [3]);",
	}

	for _, input := range inputs {
		first := printProcess(t, input)
		assert.Equal(t, first, printProcess(t, first), input)
	}
}

func TestEmptyProcessSpecification(t *testing.T) {
	spec, err := ParseProcessSpecification("", "   % only a comment\n")
	require.NoError(t, err)
	assert.Empty(t, spec.Sections)
	assert.Nil(t, spec.Bare)
	assert.Equal(t, "", ast.Print(spec))
}

func TestStateFormulas(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[a*]true", "[a*]true"},
		{"<true*.a>true", "<true* . a>true"},
		{"nu X. [a]X && <b>true", "nu X. [a]X && <b>true"},
		{"mu X(n: Nat = 0). <a(n)>X(n+1)", "mu X(n: Nat = 0). <a(n)>X(n + 1)"},
		{"forall n: Nat. [a(n)]true", "forall n: Nat. [a(n)]true"},
		{"[!a || b]false", "[!a || b]false"},
		{"[(!a)*]false", "[(!a)*]false"},
		{"<a|b>true => !<tau>false", "<a|b>true => !<tau>false"},
		{"[nil]delay @ 2", "[nil]delay @ 2"},
		{"(true)", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, printFormula(t, tt.input, false))
		})
	}
}

func TestQuantitativeFormulas(t *testing.T) {
	assert.Equal(t, "sup n: Nat. val(n) + 2 * X", printFormula(t, "sup n: Nat. val(n) + 2 * X", true))
	assert.Equal(t, "-1 + 3", printFormula(t, "-1 + 3", true))
}

func TestQuantitativeOperatorRejected(t *testing.T) {
	_, err := ParseStateFormulaSpecification("", "true + false", false)
	errs := parseErrors(t, err)
	assert.Equal(t, "operator '+' is only available in quantitative formulas", errs.First().Msg)
	assert.Equal(t, 6, errs.First().Pos.Column)
}

func TestQuantitativeNumeralRejected(t *testing.T) {
	_, err := ParseStateFormulaSpecification("", "2 * val(1)", false)
	errs := parseErrors(t, err)
	assert.Equal(t, "numeric constant '2' is only available in quantitative formulas", errs.First().Msg)
	assert.Equal(t, 1, errs.First().Pos.Column)
}

func TestStateFormulaSpecification(t *testing.T) {
	assert.Equal(t, "act  a;\n\nform [a]true;", printFormula(t, "act a; form [a]true;", false))
	assert.Equal(t, "form true;", printFormula(t, "form true;", false))
}

func TestStateFormulaSpecificationErrors(t *testing.T) {
	_, err := ParseStateFormulaSpecification("", "act a;", false)
	errs := parseErrors(t, err)
	assert.Equal(t, "expected 'form' section, found end of input", errs.First().Msg)

	_, err = ParseStateFormulaSpecification("", "proc P = a; form true;", false)
	errs = parseErrors(t, err)
	assert.Equal(t, `'proc' is not allowed in a state formula specification, found "proc"`, errs.First().Msg)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input  string
		msg    string
		line   int
		column int
	}{
		{"a . . b", `expected process expression, found "."`, 1, 5},
		{"a .", "expected process expression, found end of input", 1, 4},
		{"act a", "expected ';' after action declaration, found end of input", 1, 6},
		{"act a;\nform true;", `'form' is not allowed in a process specification, found "form"`, 2, 1},
		{"init a;\ninit b;", `duplicate init section, found "init"`, 2, 1},
		{"proc P = a", "expected ';' after process definition, found end of input", 1, 11},
		{"a b", `expected end of input, found "b"`, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseProcessSpecification("", tt.input)
			first := parseErrors(t, err).First()
			assert.Equal(t, tt.msg, first.Msg)
			assert.Equal(t, tt.line, first.Pos.Line)
			assert.Equal(t, tt.column, first.Pos.Column)
		})
	}
}

func TestErrorsAreCollected(t *testing.T) {
	_, err := ParseProcessSpecification("spec.mcrl2", "proc P = ;\nproc Q = ;")
	errs := parseErrors(t, err)

	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Pos.Line)
	assert.Equal(t, 2, errs[1].Pos.Line)
	assert.Contains(t, errs.Error(), "(and 1 more errors)")
	assert.Equal(t, errs[0].Msg, errs.Message())
	assert.Equal(t, errs[0].Pos, errs.Position())
}

func TestLexerErrors(t *testing.T) {
	_, err := ParseProcessSpecification("", "a $ b")
	errs := parseErrors(t, err)
	assert.Len(t, errs, 1)
}

func TestNewError(t *testing.T) {
	err := NewError(ast.Position{Filename: "f", Offset: 3, Line: 1, Column: 4}, "undeclared action '%s'", "c")
	assert.Equal(t, "undeclared action 'c'", err.Message())
	assert.Equal(t, "f:1:4: undeclared action 'c'", err.Error())
}
