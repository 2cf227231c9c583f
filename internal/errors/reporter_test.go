package errors

import (
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/ast"
	"parsecheck/internal/parser"
	"parsecheck/internal/stateformulas"
)

func init() {
	color.NoColor = true
}

func TestReporterFormatsContext(t *testing.T) {
	source := "act a, b;\nproc P = a . c;\ninit P;"
	reporter := NewReporter("spec.mcrl2", source)

	d := NewDiagnostic(ErrorUndeclaredAction, "undeclared action 'c'", ast.Position{Line: 2, Column: 14}).
		WithLength(1).
		WithSuggestion("did you mean 'a'?").
		Build()
	formatted := reporter.FormatError(d)

	assert.Contains(t, formatted, "error[E0201]: undeclared action 'c'")
	assert.Contains(t, formatted, "spec.mcrl2:2:14")
	assert.Contains(t, formatted, "  1 │ act a, b;")
	assert.Contains(t, formatted, "  2 │ proc P = a . c;")
	assert.Contains(t, formatted, "  3 │ init P;")
	assert.Contains(t, formatted, "    │              ^\n")
	assert.Contains(t, formatted, "help try: did you mean 'a'?")
}

func TestReporterWithoutFilename(t *testing.T) {
	formatted := NewReporter("", "true &&").FormatError(Diagnostic{Level: Error, Message: "boom", Position: ast.Position{Line: 1, Column: 6}})
	assert.Contains(t, formatted, "<input>:1:6")
	assert.Contains(t, formatted, "error: boom")
}

func parseError(t *testing.T, err error) participle.Error {
	t.Helper()
	require.Error(t, err)
	perr, ok := err.(participle.Error)
	require.True(t, ok, "expected a participle.Error, got %T", err)
	return perr
}

func TestFromParseErrorSyntax(t *testing.T) {
	_, err := parser.ParseProcessSpecification("", "a . . b")
	d := FromParseError(parseError(t, err), "a . . b")

	assert.Equal(t, ErrorSyntax, d.Code)
	assert.Equal(t, 1, d.Position.Line)
}

func TestFromParseErrorUnexpectedEnd(t *testing.T) {
	_, err := parser.ParseProcessSpecification("", "a .")
	d := FromParseError(parseError(t, err), "a .")

	assert.Equal(t, ErrorUnexpectedEnd, d.Code)
}

func TestFromParseErrorUndeclaredAction(t *testing.T) {
	source := "act send;\nform [sned]true;"
	_, err := stateformulas.ParseSpecificationDefault(source, nil)
	d := FromParseError(parseError(t, err), source)

	assert.Equal(t, ErrorUndeclaredAction, d.Code)
	assert.Equal(t, 4, d.Length)
	require.Len(t, d.Suggestions, 1)
	assert.Equal(t, "did you mean 'send'?", d.Suggestions[0].Message)
	assert.NotEmpty(t, d.HelpText)
}

func TestFromParseErrorMonotonicity(t *testing.T) {
	source := "mu X. !X"
	_, err := stateformulas.ParseSpecification(source, nil, false, stateformulas.ParseOptions{CheckMonotonicity: true})
	d := FromParseError(parseError(t, err), source)

	assert.Equal(t, ErrorNotMonotonic, d.Code)
	assert.Equal(t, 1, d.Position.Line)
	assert.Equal(t, 8, d.Position.Column)
}

func TestFromParseErrorQuantitative(t *testing.T) {
	source := "true + false"
	_, err := stateformulas.ParseSpecification(source, nil, false, stateformulas.ParseOptions{})
	d := FromParseError(parseError(t, err), source)

	assert.Equal(t, ErrorQuantitativeOnly, d.Code)
}

func TestFromParseErrorQuantitativeNumeral(t *testing.T) {
	source := "2 * val(1)"
	_, err := stateformulas.ParseSpecification(source, nil, false, stateformulas.ParseOptions{})
	d := FromParseError(parseError(t, err), source)

	assert.Equal(t, ErrorQuantitativeOnly, d.Code)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestFindSimilarNames(t *testing.T) {
	similar := findSimilarNames("recv", []string{"recv", "rcv", "recieve", "send", "reca"})
	assert.Equal(t, []string{"rcv", "reca"}, similar)
}

func TestErrorDescriptions(t *testing.T) {
	for _, code := range []string{ErrorSyntax, ErrorUndeclaredAction, ErrorNotMonotonic, ErrorToolFailure} {
		assert.NotEmpty(t, GetErrorDescription(code), code)
	}
	assert.Empty(t, GetErrorDescription("E9999"))
}
