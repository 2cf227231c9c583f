// Package toolexec runs external mCRL2 tools. A Tool speaks the print-ast
// protocol (input on stdin, printed AST on stdout) and can stand in for the
// native toolkit behind a bridge.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"parsecheck/internal/bridge"
	"parsecheck/internal/lps"
	"parsecheck/internal/stateformulas"
)

var log = commonlog.GetLogger("parsecheck.toolexec")

// Result is the outcome of one tool run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the tool exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Output is stdout followed by stderr, the way the tools interleave them on
// a terminal.
func (r Result) Output() string {
	return r.Stdout + r.Stderr
}

// Run starts the tool at path, feeds it stdin and waits for it to exit. A
// non-zero exit status is reported in the Result, not as an error; err is set
// only when the tool could not be run at all or ctx was cancelled.
func Run(ctx context.Context, path string, stdin string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("running %s %s", path, strings.Join(args, " "))
	err := cmd.Run()

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", path, err)
	}
	return result, nil
}

// ToolError is a rejection reported by an external tool.
type ToolError struct {
	Path     string
	ExitCode int
	Message  string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Path, e.ExitCode)
	}
	return msg
}

// Tool is a print-ast executable. It implements bridge.Toolkit.
type Tool struct {
	Path string
	// Args are passed before the mode flags on every run.
	Args []string
	// Timeout bounds each run. Zero means no limit.
	Timeout time.Duration
}

var _ bridge.Toolkit = (*Tool)(nil)

func (t *Tool) context() (context.Context, context.CancelFunc) {
	if t.Timeout > 0 {
		return context.WithTimeout(context.Background(), t.Timeout)
	}
	return context.WithCancel(context.Background())
}

// printedText is the output of the tool, returned as is whatever the
// parentheses mode, since the tool decides its own layout.
type printedText string

func (p printedText) PP(bool) string {
	return strings.TrimSuffix(string(p), "\n")
}

func (t *Tool) print(text string, flags ...string) (bridge.Printable, error) {
	args := append(append([]string{}, t.Args...), flags...)
	ctx, cancel := t.context()
	defer cancel()
	res, err := Run(ctx, t.Path, text, args...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, &ToolError{Path: t.Path, ExitCode: res.ExitCode, Message: res.Stderr}
	}
	return printedText(res.Stdout), nil
}

func (t *Tool) ParseProcessSpecification(text string) (bridge.Printable, error) {
	return t.print(text)
}

// ParseStateFormulaSpecification passes the options as flags. The model is
// not sent; external tools parse against the empty model.
func (t *Tool) ParseStateFormulaSpecification(text string, model *lps.Specification, quantitative bool, opts stateformulas.ParseOptions) (bridge.Printable, error) {
	if !model.IsEmpty() {
		log.Warningf("%s parses formulas against the empty model", t.Path)
	}
	return t.print(text, FormulaFlags(quantitative, opts)...)
}

func (t *Tool) ParseStateFormulaSpecificationDefault(text string, model *lps.Specification) (bridge.Printable, error) {
	return t.print(text, "-mcf", "-legacy")
}

// FormulaFlags renders formula options as print-ast flags.
func FormulaFlags(quantitative bool, opts stateformulas.ParseOptions) []string {
	flags := []string{"-mcf"}
	if quantitative {
		flags = append(flags, "-quantitative")
	}
	if opts.TranslateUserNotation {
		flags = append(flags, "-user-notation")
	}
	if opts.TypeCheck {
		flags = append(flags, "-typecheck")
	}
	if opts.TranslateRegularFormulas {
		flags = append(flags, "-regular")
	}
	if opts.ResolveNameClashes {
		flags = append(flags, "-name-clashes")
	}
	if opts.CheckMonotonicity {
		flags = append(flags, "-monotonicity")
	}
	return flags
}
