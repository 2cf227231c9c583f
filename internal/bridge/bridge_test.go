package bridge

import (
	"errors"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/lps"
	"parsecheck/internal/stateformulas"
)

func TestPrintProcessSequence(t *testing.T) {
	out, err := PrintProcessSpecification("a . b")
	require.NoError(t, err)
	assert.Equal(t, "a . b\n", out)
}

func TestPrintProcessSpecificationSections(t *testing.T) {
	input := `act a, b;
proc P = a . P + b;
init P;`
	out, err := PrintProcessSpecification(input)
	require.NoError(t, err)
	assert.Equal(t, "act  a, b;\n\nproc P = a . P + b;\n\ninit P;\n", out)
}

func TestPrintStateFormulaTrue(t *testing.T) {
	out, err := PrintStateFormula("true")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestPrintStateFormulaSkipsTypeCheck(t *testing.T) {
	// "a" is not declared anywhere; the explicit path must still accept it.
	out, err := PrintStateFormula("[a]true")
	require.NoError(t, err)
	assert.Equal(t, "[a]true\n", out)
}

func TestInvalidInputFailsOnEveryPath(t *testing.T) {
	inputs := []string{"a . . b", "(", "[a", "true &&"}
	for _, input := range inputs {
		for _, mode := range []Mode{ModeProcess, ModeFormula, ModeQuantitativeFormula, ModeFormulaDefault} {
			out, err := Print(mode, input)
			require.Error(t, err, "mode %s should reject %q", mode, input)
			assert.Empty(t, out)

			var perr participle.Error
			assert.True(t, errors.As(err, &perr), "mode %s should return a parse error, got %T", mode, err)
		}
	}
}

func TestQualitativeMatchesQuantitative(t *testing.T) {
	formulas := []string{
		"true",
		"[a]false",
		"mu X. <a>X || [b]true",
		"nu X(n: Nat = 0). val(n < 3) && [a(n)]X(n + 1)",
		"forall d: Nat. <a(d)>true",
	}
	for _, f := range formulas {
		qual, err := PrintStateFormula(f)
		require.NoError(t, err, f)
		quant, err := PrintQuantitativeStateFormula(f)
		require.NoError(t, err, f)
		assert.Equal(t, qual, quant, f)
	}
}

func TestQuantitativeOperatorsNeedQuantitativePath(t *testing.T) {
	_, err := PrintStateFormula("sup d: Nat. val(d)")
	assert.Error(t, err)

	out, err := PrintQuantitativeStateFormula("sup d: Nat. val(d)")
	require.NoError(t, err)
	assert.Equal(t, "sup d: Nat. val(d)\n", out)
}

func TestLegacyPathAgreesOnTrue(t *testing.T) {
	assert.NoError(t, CompareFormulaPaths("true"))

	out, err := PrintStateFormulaDefault("true")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestLegacyPathDivergence(t *testing.T) {
	err := CompareFormulaPaths("act a;\nform [a*]true;")

	var div *DivergenceError
	require.True(t, errors.As(err, &div), "expected a divergence, got %v", err)
	assert.Equal(t, "act  a;\n\nform [a*]true;\n", div.Explicit)
	assert.Equal(t, "act  a;\n\nform nu X. true && [a]X;\n", div.Default)
}

func TestLegacyPathTypeChecks(t *testing.T) {
	_, err := PrintStateFormulaDefault("[a]true")
	assert.Error(t, err)
}

func TestPrintIsFixpoint(t *testing.T) {
	inputs := []struct {
		mode Mode
		text string
	}{
		{ModeProcess, "a . (b + c)"},
		{ModeProcess, "sum n: Nat. (n < 3) -> a(n) . P(n + 1) <> delta"},
		{ModeProcess, "allow({a | b}, comm({c | d -> a}, P || Q))"},
		{ModeFormula, "[true*]<a>true"},
		{ModeFormula, "!(mu X. [a]X) => nu Y. <b>Y"},
		{ModeQuantitativeFormula, "inf d: Nat. 2 * val(d) + -X"},
	}
	for _, in := range inputs {
		first, err := Print(in.mode, in.text)
		require.NoError(t, err, in.text)
		second, err := Print(in.mode, first)
		require.NoError(t, err, first)
		assert.Equal(t, first, second, "printing %q is not stable", in.text)
	}
}

func TestModeNames(t *testing.T) {
	for _, mode := range []Mode{ModeProcess, ModeFormula, ModeQuantitativeFormula, ModeFormulaDefault} {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := ParseMode("lts")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

// recordingToolkit captures the arguments of the formula paths.
type recordingToolkit struct {
	Native
	quantitative bool
	opts         stateformulas.ParseOptions
	model        *lps.Specification
	err          error
}

func (r *recordingToolkit) ParseStateFormulaSpecification(text string, model *lps.Specification, quantitative bool, opts stateformulas.ParseOptions) (Printable, error) {
	r.quantitative, r.opts, r.model = quantitative, opts, model
	if r.err != nil {
		return nil, r.err
	}
	return r.Native.ParseStateFormulaSpecification(text, model, quantitative, opts)
}

func TestExplicitPathsPassOptions(t *testing.T) {
	tk := &recordingToolkit{}
	b := New(tk)

	_, err := b.PrintQuantitativeStateFormula("true")
	require.NoError(t, err)
	assert.True(t, tk.quantitative)
	assert.Equal(t, stateformulas.ParseOptions{}, tk.opts)
	require.NotNil(t, tk.model)
	assert.True(t, tk.model.IsEmpty())

	_, err = b.PrintStateFormula("true")
	require.NoError(t, err)
	assert.False(t, tk.quantitative)
}

func TestToolkitErrorsPassThrough(t *testing.T) {
	sentinel := errors.New("rejected")
	b := New(&recordingToolkit{err: sentinel})

	out, err := b.PrintStateFormula("true")
	assert.Same(t, sentinel, err)
	assert.Empty(t, out)
}
