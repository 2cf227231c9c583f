// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"parsecheck/internal/bridge"
	diag "parsecheck/internal/errors"
	"parsecheck/internal/lps"
	"parsecheck/internal/report"
	"parsecheck/internal/stateformulas"
)

const help = `:mcrl2   read process specifications
:mcf     read state formulas
:qmcf    read quantitative state formulas
:parens  toggle full parentheses
:indent  toggle indented output
:quit    leave`

// REPL prints every line it reads in the current mode.
type REPL struct {
	Mode   bridge.Mode
	Parens bool
	Indent bool

	bridge *bridge.Bridge
	out    io.Writer
}

func New(b *bridge.Bridge, out io.Writer) *REPL {
	if b == nil {
		b = bridge.Default()
	}
	return &REPL{Mode: bridge.ModeProcess, bridge: b, out: out}
}

func (r *REPL) prompt() string {
	return r.Mode.String() + "> "
}

// Eval handles one line: a command or an input to print.
func (r *REPL) Eval(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}

	out, err := r.print(line)
	if err != nil {
		return false, err
	}
	if r.Indent {
		report.Indent(r.out, out)
	} else {
		fmt.Fprint(r.out, out)
	}
	return false, nil
}

func (r *REPL) command(line string) (bool, error) {
	switch line {
	case ":quit", ":q":
		return true, nil
	case ":parens":
		r.Parens = !r.Parens
	case ":indent":
		r.Indent = !r.Indent
	case ":help":
		fmt.Fprintln(r.out, help)
	default:
		mode, err := bridge.ParseMode(strings.TrimPrefix(line, ":"))
		if err != nil {
			return false, fmt.Errorf("unknown command %s, try :help", line)
		}
		r.Mode = mode
	}
	return false, nil
}

// print goes through the bridge unless full parentheses are requested,
// which only the toolkit itself can produce.
func (r *REPL) print(text string) (string, error) {
	if !r.Parens {
		return r.bridge.Print(r.Mode, text)
	}

	var (
		p   bridge.Printable
		err error
	)
	native := bridge.Native{}
	switch r.Mode {
	case bridge.ModeProcess:
		p, err = native.ParseProcessSpecification(text)
	case bridge.ModeFormulaDefault:
		p, err = native.ParseStateFormulaSpecificationDefault(text, &lps.Specification{})
	default:
		quantitative := r.Mode == bridge.ModeQuantitativeFormula
		p, err = native.ParseStateFormulaSpecification(text, &lps.Specification{}, quantitative, stateformulas.ParseOptions{})
	}
	if err != nil {
		return "", err
	}
	return p.PP(true) + "\n", nil
}

// Start runs the interactive loop until end of input or :quit.
func Start(out io.Writer) error {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	r := New(nil, out)
	rl, err := readline.New(r.prompt())
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Type :help for commands, quit with :quit or <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		quit, err := r.Eval(line)
		if err != nil {
			pterm.Error.Println(formatError(line, err))
		}
		if quit {
			break
		}
		rl.SetPrompt(r.prompt())
	}
	pterm.Info.Println("Good bye!")
	return nil
}

func formatError(line string, err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		return strings.TrimRight(diag.NewReporter("", line).FormatParseError(perr), "\n")
	}
	return err.Error()
}
