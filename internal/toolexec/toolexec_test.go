package toolexec

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/bridge"
	"parsecheck/internal/stateformulas"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunPassesStdin(t *testing.T) {
	sh := requireShell(t)

	res, err := Run(context.Background(), sh, "a . b\n", "-c", "cat")
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "a . b\n", res.Stdout)
}

func TestRunReportsExitStatus(t *testing.T) {
	sh := requireShell(t)

	res, err := Run(context.Background(), sh, "", "-c", "echo broken >&2; exit 3")
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "broken\n", res.Output())
}

func TestRunMissingTool(t *testing.T) {
	_, err := Run(context.Background(), "/nonexistent/print-ast", "")
	assert.Error(t, err)
}

func TestToolAsToolkit(t *testing.T) {
	sh := requireShell(t)

	// Echo the flags back so the test can see which were passed.
	tool := &Tool{Path: sh, Args: []string{"-c", `echo "$*"`, "print-ast"}}
	b := bridge.New(tool)

	out, err := b.PrintQuantitativeStateFormula("true")
	require.NoError(t, err)
	assert.Equal(t, "-mcf -quantitative\n", out)

	out, err = b.PrintStateFormulaDefault("true")
	require.NoError(t, err)
	assert.Equal(t, "-mcf -legacy\n", out)

	out, err = b.PrintProcessSpecification("a")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestToolRejection(t *testing.T) {
	sh := requireShell(t)

	tool := &Tool{Path: sh, Args: []string{"-c", "echo 'syntax error' >&2; exit 1"}}
	_, err := bridge.New(tool).PrintProcessSpecification("a . . b")

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Equal(t, "syntax error", toolErr.Error())
}

func TestToolTimeout(t *testing.T) {
	sh := requireShell(t)

	tool := &Tool{Path: sh, Args: []string{"-c", "exec sleep 5"}, Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := bridge.New(tool).PrintProcessSpecification("act a;")

	require.Error(t, err)
	var toolErr *ToolError
	assert.False(t, errors.As(err, &toolErr))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestFormulaFlags(t *testing.T) {
	assert.Equal(t, []string{"-mcf"}, FormulaFlags(false, stateformulas.ParseOptions{}))
	assert.Equal(t,
		[]string{"-mcf", "-user-notation", "-typecheck", "-regular", "-name-clashes", "-monotonicity"},
		FormulaFlags(false, stateformulas.DefaultParseOptions()))
}
