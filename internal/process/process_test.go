package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndPrint(t *testing.T) {
	spec, err := Parse("a.b+c")
	require.NoError(t, err)

	assert.Equal(t, "a . b + c", PP(spec, false))
	assert.Equal(t, "(a . b) + c", PP(spec, true))
}

func TestParseEmpty(t *testing.T) {
	spec, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "", PP(spec, false))
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("a . . b")
	assert.Error(t, err)
}

func TestTypeCheckOption(t *testing.T) {
	_, err := Parse("a . b")
	assert.NoError(t, err)

	_, err = ParseWithOptions("a . b", Options{TypeCheck: true})
	assert.EqualError(t, err, "1:1: undeclared action or process 'a'")

	spec, err := ParseWithOptions("act a, b;\ninit a . b;", Options{TypeCheck: true})
	require.NoError(t, err)
	assert.Equal(t, "act  a, b;\n\ninit a . b;", PP(spec, false))
}
