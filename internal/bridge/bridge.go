// Package bridge turns text into pretty-printed ASTs by calling a toolkit's
// parser and printer. It owns no state of its own: every call parses into a
// fresh representation, prints it, and drops it.
//
// The bridge adds no locking. Concurrent calls are as safe as the Toolkit
// they run on; the Native toolkit keeps no global mutable state.
package bridge

import (
	"parsecheck/internal/lps"
	"parsecheck/internal/process"
	"parsecheck/internal/stateformulas"
)

// Printable is a parsed specification the toolkit can print again.
type Printable interface {
	PP(fullParens bool) string
}

// Toolkit is the parser capability the bridge calls into. Errors returned by
// a Toolkit are passed to the caller unchanged.
type Toolkit interface {
	ParseProcessSpecification(text string) (Printable, error)
	ParseStateFormulaSpecification(text string, model *lps.Specification, quantitative bool, opts stateformulas.ParseOptions) (Printable, error)
	ParseStateFormulaSpecificationDefault(text string, model *lps.Specification) (Printable, error)
}

// Bridge runs the four print paths against one Toolkit.
type Bridge struct {
	tk Toolkit
}

func New(tk Toolkit) *Bridge {
	return &Bridge{tk: tk}
}

var defaultBridge = New(Native{})

// Default returns the bridge over the Native toolkit.
func Default() *Bridge {
	return defaultBridge
}

// formulaOptions are the options used by the explicit formula paths: the
// formula is only parsed, never checked or rewritten.
func formulaOptions() stateformulas.ParseOptions {
	return stateformulas.ParseOptions{
		TypeCheck:                false,
		TranslateRegularFormulas: false,
		TranslateUserNotation:    false,
		ResolveNameClashes:       false,
		CheckMonotonicity:        false,
	}
}

func printed(p Printable, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return p.PP(false) + "\n", nil
}

// PrintProcessSpecification parses text as a process specification with the
// toolkit's default options and prints it.
func (b *Bridge) PrintProcessSpecification(text string) (string, error) {
	return printed(b.tk.ParseProcessSpecification(text))
}

// PrintStateFormula parses text as a qualitative state formula against the
// empty model, with every check and translation off, and prints it.
func (b *Bridge) PrintStateFormula(text string) (string, error) {
	return printed(b.tk.ParseStateFormulaSpecification(text, &lps.Specification{}, false, formulaOptions()))
}

// PrintQuantitativeStateFormula is PrintStateFormula for the quantitative
// dialect.
func (b *Bridge) PrintQuantitativeStateFormula(text string) (string, error) {
	return printed(b.tk.ParseStateFormulaSpecification(text, &lps.Specification{}, true, formulaOptions()))
}

// PrintStateFormulaDefault parses text through the toolkit's convenience
// entry point, which applies the toolkit's own default options.
func (b *Bridge) PrintStateFormulaDefault(text string) (string, error) {
	return printed(b.tk.ParseStateFormulaSpecificationDefault(text, &lps.Specification{}))
}

func PrintProcessSpecification(text string) (string, error) {
	return Default().PrintProcessSpecification(text)
}

func PrintStateFormula(text string) (string, error) {
	return Default().PrintStateFormula(text)
}

func PrintQuantitativeStateFormula(text string) (string, error) {
	return Default().PrintQuantitativeStateFormula(text)
}

func PrintStateFormulaDefault(text string) (string, error) {
	return Default().PrintStateFormulaDefault(text)
}

// Native is the Toolkit implemented by this module's own parser packages.
type Native struct{}

func (Native) ParseProcessSpecification(text string) (Printable, error) {
	spec, err := process.Parse(text)
	if err != nil {
		return nil, err
	}
	return printFunc(func(fullParens bool) string { return process.PP(spec, fullParens) }), nil
}

func (Native) ParseStateFormulaSpecification(text string, model *lps.Specification, quantitative bool, opts stateformulas.ParseOptions) (Printable, error) {
	spec, err := stateformulas.ParseSpecification(text, model, quantitative, opts)
	if err != nil {
		return nil, err
	}
	return printFunc(func(fullParens bool) string { return stateformulas.PP(spec, fullParens) }), nil
}

func (Native) ParseStateFormulaSpecificationDefault(text string, model *lps.Specification) (Printable, error) {
	spec, err := stateformulas.ParseSpecificationDefault(text, model)
	if err != nil {
		return nil, err
	}
	return printFunc(func(fullParens bool) string { return stateformulas.PP(spec, fullParens) }), nil
}

// printFunc adapts a print closure to Printable.
type printFunc func(fullParens bool) string

func (f printFunc) PP(fullParens bool) string { return f(fullParens) }
