package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/lps"
	"parsecheck/internal/parser"
)

func checkProcess(t *testing.T, text string) error {
	t.Helper()
	spec, err := parser.ParseProcessSpecification("", text)
	require.NoError(t, err)
	return CheckProcessSpecification(spec)
}

func checkFormula(t *testing.T, text string, model *lps.Specification) error {
	t.Helper()
	spec, err := parser.ParseStateFormulaSpecification("", text, false)
	require.NoError(t, err)
	return CheckStateFormulaSpecification(spec, model)
}

func message(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	perr, ok := err.(*parser.ParseError)
	require.True(t, ok, "expected a *parser.ParseError, got %T", err)
	return perr.Message()
}

func TestProcessSpecificationAccepted(t *testing.T) {
	inputs := []string{
		"act a, b;\nproc P = a . b . P;\ninit P;",
		"act a: Nat;\nproc P(n: Nat) = a(n) . P(n + 1);\ninit P(0);",
		"act a;\n     a: Nat;\ninit a . a(1);",
		"act a;\nproc P(n: Nat) = a . P(n = n + 1);\ninit P(0);",
		"act a, b, c;\ninit allow({c}, comm({a | b -> c}, a || b));",
	}
	for _, input := range inputs {
		assert.NoError(t, checkProcess(t, input), input)
	}
}

func TestProcessSpecificationRejected(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"act send;\ninit sned;", "undeclared action or process 'sned'"},
		{"act a: Nat;\ninit a;", "action 'a' is not declared with 0 parameter(s)"},
		{"act a;\nproc P(n: Nat) = a;\ninit P;", "process 'P' expects 1 argument(s), got 0"},
		{"act a;\nproc P = a;\n     P = a;\ninit P;", "process 'P' is defined twice"},
		{"act P;\nproc P = P;\ninit P;", "'P' is declared both as an action and as a process"},
		{"act a;\nproc P(n: Nat) = a;\ninit P(m = 1);", "'m' is not a parameter of process 'P'"},
		{"act a;\ninit Q();", "undeclared process 'Q'"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.msg, message(t, checkProcess(t, tt.input)))
		})
	}
}

func TestUndeclaredActionPosition(t *testing.T) {
	err := checkProcess(t, "act send;\ninit sned;")
	require.Error(t, err)
	perr := err.(*parser.ParseError)
	assert.Equal(t, 2, perr.Pos.Line)
	assert.Equal(t, 6, perr.Pos.Column)
}

func TestStateFormulaAgainstModel(t *testing.T) {
	procSpec, err := parser.ParseProcessSpecification("", "act a: Nat;\n     b;\ninit a(1) . b;")
	require.NoError(t, err)
	model := lps.FromProcessSpecification(procSpec)

	assert.NoError(t, checkFormula(t, "[a(1)]<b>true", model))
	assert.NoError(t, checkFormula(t, "forall n: Nat. [a(n)]true", model))
	assert.Equal(t, "action 'a' is not declared with 0 parameter(s)", message(t, checkFormula(t, "[a]true", model)))
	assert.Equal(t, "undeclared action 'c'", message(t, checkFormula(t, "[c]true", model)))
}

func TestStateFormulaOwnDeclarations(t *testing.T) {
	assert.NoError(t, checkFormula(t, "act a; form <a>true;", nil))
	assert.Equal(t, "undeclared action 'a'", message(t, checkFormula(t, "[a]true", nil)))
	assert.NoError(t, checkFormula(t, "[true*]<!true>false", nil))
}

func TestFixpointVariables(t *testing.T) {
	assert.NoError(t, checkFormula(t, "nu X(n: Nat = 0). [true]X(n + 1)", nil))
	assert.NoError(t, checkFormula(t, "nu X. mu Y. X && Y", nil))
	assert.Equal(t, "unbound fixpoint variable 'Y'", message(t, checkFormula(t, "nu X. [true]Y", nil)))
	assert.Equal(t, "unbound fixpoint variable 'Y'", message(t, checkFormula(t, "(mu Y. Y) && Y", nil)))
	assert.Equal(t, "fixpoint variable 'X' expects 1 argument(s), got 0", message(t, checkFormula(t, "nu X(n: Nat = 0). X", nil)))
}
