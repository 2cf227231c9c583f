package repl

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/bridge"
)

func TestEvalPrintsInCurrentMode(t *testing.T) {
	var out bytes.Buffer
	r := New(nil, &out)

	quit, err := r.Eval("a.b")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "a . b\n", out.String())
}

func TestEvalSwitchesMode(t *testing.T) {
	var out bytes.Buffer
	r := New(nil, &out)

	_, err := r.Eval(":qmcf")
	require.NoError(t, err)
	assert.Equal(t, bridge.ModeQuantitativeFormula, r.Mode)
	assert.Equal(t, "qmcf> ", r.prompt())

	_, err = r.Eval("true + false")
	require.NoError(t, err)
	assert.Equal(t, "true + false\n", out.String())

	_, err = r.Eval(":mcf")
	require.NoError(t, err)
	_, err = r.Eval("true + false")
	assert.Error(t, err)
}

func TestEvalParens(t *testing.T) {
	var out bytes.Buffer
	r := New(nil, &out)

	_, err := r.Eval(":parens")
	require.NoError(t, err)
	assert.True(t, r.Parens)

	_, err = r.Eval("a . b + c")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(")
}

func TestEvalIndent(t *testing.T) {
	var out bytes.Buffer
	r := New(nil, &out)
	r.Mode = bridge.ModeFormula

	_, err := r.Eval(":indent")
	require.NoError(t, err)
	_, err = r.Eval("<a>(true)")
	require.NoError(t, err)
	assert.Equal(t, "<a>true\n", out.String())
}

func TestEvalQuit(t *testing.T) {
	r := New(nil, &bytes.Buffer{})

	quit, err := r.Eval(":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestEvalUnknownCommand(t *testing.T) {
	r := New(nil, &bytes.Buffer{})

	_, err := r.Eval(":lts")
	assert.EqualError(t, err, "unknown command :lts, try :help")
}

func TestFormatErrorShowsCaret(t *testing.T) {
	color.NoColor = true
	r := New(nil, &bytes.Buffer{})

	_, err := r.Eval("a . . b")
	require.Error(t, err)
	formatted := formatError("a . . b", err)
	assert.Contains(t, formatted, "<input>:1:5")
	assert.Contains(t, formatted, "^")
}
