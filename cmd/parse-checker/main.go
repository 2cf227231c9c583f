// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"parsecheck/internal/bridge"
	"parsecheck/internal/config"
	diag "parsecheck/internal/errors"
	"parsecheck/internal/lps"
	"parsecheck/internal/parser"
	"parsecheck/internal/process"
	"parsecheck/internal/report"
	"parsecheck/internal/source"
	"parsecheck/internal/stateformulas"
	"parsecheck/internal/toolexec"
	"parsecheck/internal/watch"
)

var log = commonlog.GetLogger("parsecheck.cli")

type options struct {
	mcf          bool
	print        bool
	indented     bool
	quantitative bool
	parens       bool
	model        string
	typecheck    bool
	configPath   string
	watch        bool
	verbosity    int
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "examples" {
		os.Exit(runExamples(os.Args[2:]))
	}
	os.Exit(run(os.Args[1:]))
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), "Usage: parse-checker [flags] <file.mcrl2|file.mcf>\n")
		fmt.Fprintf(fs.Output(), "       parse-checker examples [flags] [dir]\n\n")
		fmt.Fprintf(fs.Output(), "Checks whether mCRL2 specifications or modal formulas parse differently between two releases.\n\n")
		fs.PrintDefaults()
	}
}

func run(args []string) int {
	var opts options
	fs := flag.NewFlagSet("parse-checker", flag.ExitOnError)
	fs.BoolVar(&opts.mcf, "mcf", false, "check a modal formula instead of an mCRL2 specification")
	fs.BoolVar(&opts.print, "print", false, "print the parse tree of the input file")
	fs.BoolVar(&opts.indented, "indented", false, "print the parse tree indented")
	fs.BoolVar(&opts.quantitative, "quantitative", false, "parse the modal formula as a quantitative formula")
	fs.BoolVar(&opts.parens, "parens", false, "print every parenthesis")
	fs.StringVar(&opts.model, "model", "", "mCRL2 specification whose declarations formulas are checked against")
	fs.BoolVar(&opts.typecheck, "typecheck", false, "report declaration and arity errors")
	fs.StringVar(&opts.configPath, "config", config.FileName, "configuration file")
	fs.BoolVar(&opts.watch, "watch", false, "check again whenever the input changes")
	fs.IntVar(&opts.verbosity, "v", 0, "log verbosity")
	fs.Usage = usage(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	cfg, err := setup(opts.configPath, opts.verbosity)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	switch filepath.Ext(path) {
	case ".mcf":
		// The toolset treats .mcf files as modal formulas too.
		opts.mcf = true
	case ".mcrl2":
		opts.mcf = false
	}

	if _, err := os.Stat(path); err != nil {
		color.Red("Cannot find file %s", path)
		return 1
	}

	code := check(cfg, opts, path)
	if !opts.watch {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watch.New(watch.Config{
		DebounceWindow: cfg.Watch.DebounceWindow,
		MaxBatchSize:   cfg.Watch.MaxBatchSize,
		Patterns:       []string{filepath.Base(path)},
	}, func([]string) {
		fmt.Println()
		code = check(cfg, opts, path)
	})
	if err != nil {
		color.Red("%s", err)
		return 1
	}
	if err := w.Add(path); err != nil {
		color.Red("%s", err)
		return 1
	}
	color.Cyan("Watching %s, press Ctrl+C to stop", path)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		color.Red("%s", err)
		return 1
	}
	return code
}

// setup loads the configuration and configures logging.
func setup(configPath string, verbosity int) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(max(verbosity, cfg.Log.Verbosity), logFile)

	for _, missing := range cfg.MissingTools() {
		log.Warningf("tool does not exist at: %s", missing)
	}
	return cfg, nil
}

func mode(opts options) bridge.Mode {
	switch {
	case !opts.mcf:
		return bridge.ModeProcess
	case opts.quantitative:
		return bridge.ModeQuantitativeFormula
	}
	return bridge.ModeFormula
}

func check(cfg *config.Config, opts options, path string) int {
	start := time.Now()

	text, err := source.ReadFile(path)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	if opts.print {
		ast, err := printAST(opts, text)
		if err != nil {
			reportError(path, text, err)
			return 1
		}
		if opts.indented {
			report.Indent(os.Stdout, ast)
		} else {
			fmt.Print(ast)
		}
		return 0
	}

	m := mode(opts)
	current, err := bridge.Print(m, text)
	if err != nil {
		reportError(path, text, err)
		return 1
	}

	previousTool := &toolexec.Tool{Path: cfg.Tools.PrintAST, Timeout: time.Minute}
	previous, err := bridge.New(previousTool).Print(m, text)
	if err != nil {
		color.Red("Failed to print the AST with %s: %s", cfg.Tools.PrintAST, err)
		return 1
	}

	if m.IsFormula() && !opts.quantitative {
		var divergence *bridge.DivergenceError
		if err := bridge.CompareFormulaPaths(text); errors.As(err, &divergence) {
			color.Yellow("The legacy formula path prints this formula differently:")
			report.Diff(os.Stdout, divergence.Explicit, divergence.Default)
			fmt.Println()
		}
	}

	if report.Diff(os.Stdout, current, previous) {
		if m.IsFormula() {
			color.Red("The ASTs of the modal formula specifications differ between the two versions.")
		} else {
			color.Red("The ASTs of the mCRL2 specifications differ between the two versions.")
		}
		return 1
	}

	color.Green("Successfully processed %s in %s", path, formatDuration(time.Since(start)))
	return 0
}

// printAST prints text through the bridge. Options the bridge does not take
// select the parse steps directly.
func printAST(opts options, text string) (string, error) {
	if !opts.parens && !opts.typecheck && opts.model == "" {
		return bridge.Print(mode(opts), text)
	}

	if !opts.mcf {
		spec, err := process.ParseWithOptions(text, process.Options{TypeCheck: opts.typecheck})
		if err != nil {
			return "", err
		}
		return process.PP(spec, opts.parens) + "\n", nil
	}

	model := &lps.Specification{}
	if opts.model != "" {
		modelText, err := source.ReadFile(opts.model)
		if err != nil {
			return "", err
		}
		spec, err := process.Parse(modelText)
		if err != nil {
			return "", fmt.Errorf("%s: %w", opts.model, err)
		}
		model = lps.FromProcessSpecification(spec)
	}

	parseOpts := stateformulas.ParseOptions{TypeCheck: opts.typecheck}
	spec, err := stateformulas.ParseSpecification(text, model, opts.quantitative, parseOpts)
	if err != nil {
		return "", err
	}
	return stateformulas.PP(spec, opts.parens) + "\n", nil
}

func reportError(path, text string, err error) {
	reporter := diag.NewReporter(path, text)

	var list parser.ErrorList
	var perr participle.Error
	switch {
	case errors.As(err, &list):
		for _, e := range list {
			fmt.Fprint(os.Stderr, reporter.FormatParseError(e))
		}
	case errors.As(err, &perr):
		fmt.Fprint(os.Stderr, reporter.FormatParseError(perr))
	default:
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
