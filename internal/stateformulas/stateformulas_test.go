package stateformulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/lps"
	"parsecheck/internal/process"
)

func model(t *testing.T, text string) *lps.Specification {
	t.Helper()
	spec, err := process.Parse(text)
	require.NoError(t, err)
	return lps.FromProcessSpecification(spec)
}

func TestParseSpecificationDefault(t *testing.T) {
	spec, err := ParseSpecificationDefault("[a*]true", model(t, "act a;\ninit a;"))
	require.NoError(t, err)
	assert.Equal(t, "nu X. true && [a]X", PP(spec, false))
}

func TestParseSpecificationDefaultTypeChecks(t *testing.T) {
	_, err := ParseSpecificationDefault("[a]true", nil)
	assert.EqualError(t, err, "1:2: undeclared action 'a'")
}

func TestParseSpecificationWithoutSteps(t *testing.T) {
	spec, err := ParseSpecification("[a*]true", nil, false, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "[a*]true", PP(spec, false))
}

func TestParseSpecificationFullParens(t *testing.T) {
	spec, err := ParseSpecification("[a]true && [b]true", nil, false, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "([a]true) && ([b]true)", PP(spec, true))
}

func TestParseSpecificationQuantitative(t *testing.T) {
	spec, err := ParseSpecification("sup n: Nat. val(n) + 2 * -1", nil, true, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "sup n: Nat. val(n) + 2 * -1", PP(spec, false))

	_, err = ParseSpecification("sup n: Nat. val(n)", nil, false, ParseOptions{})
	assert.Error(t, err)
}

func TestParseSpecificationMonotonicity(t *testing.T) {
	_, err := ParseSpecification("mu X. !X", nil, false, ParseOptions{})
	assert.NoError(t, err)

	_, err = ParseSpecification("mu X. !X", nil, false, ParseOptions{CheckMonotonicity: true})
	assert.EqualError(t, err, "1:8: fixpoint variable 'X' occurs under an odd number of negations")
}

func TestParseSpecificationSteps(t *testing.T) {
	text := "act a: List(Nat);\nform nu X. mu X. [a([1])]X;"
	spec, err := ParseSpecificationDefault(text, nil)
	require.NoError(t, err)
	assert.Equal(t, "act  a: List(Nat);\n\nform nu X. mu X1. [a(1 |> [])]X1;", PP(spec, false))
}
