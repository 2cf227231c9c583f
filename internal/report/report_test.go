package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestDiffIdentical(t *testing.T) {
	var buf bytes.Buffer
	changed := Diff(&buf, "a . b\n", "a . b\n")

	assert.False(t, changed)
	assert.Empty(t, buf.String())
}

func TestDiffMarksChanges(t *testing.T) {
	var buf bytes.Buffer
	changed := Diff(&buf, "a . c", "a . b")

	assert.True(t, changed)
	assert.Equal(t, "a . -c+b", buf.String())
}

func TestIndent(t *testing.T) {
	var buf bytes.Buffer
	Indent(&buf, "Seq(a,\nAlt(b, c))")

	assert.Equal(t, "Seq(\n  a,Alt(\n    b, c\n  )\n)\n", buf.String())
}

func TestIndentUnbalanced(t *testing.T) {
	var buf bytes.Buffer
	Indent(&buf, "a))")

	assert.Equal(t, "a\n)\n)\n", buf.String())
}
