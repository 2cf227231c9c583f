// Package stateformulas parses and prints modal mu-calculus formulas,
// including the quantitative dialect.
package stateformulas

import (
	"parsecheck/internal/ast"
	"parsecheck/internal/lps"
	"parsecheck/internal/parser"
	"parsecheck/internal/transform"
	"parsecheck/internal/typecheck"
)

// ParseOptions toggles the steps run after parsing. Each step runs in the
// order of the fields.
type ParseOptions struct {
	TranslateUserNotation    bool
	TypeCheck                bool
	TranslateRegularFormulas bool
	ResolveNameClashes       bool
	CheckMonotonicity        bool
}

// DefaultParseOptions enables every step.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		TranslateUserNotation:    true,
		TypeCheck:                true,
		TranslateRegularFormulas: true,
		ResolveNameClashes:       true,
		CheckMonotonicity:        true,
	}
}

// ParseSpecification parses a state formula specification and checks it
// against model. A nil model is treated as the empty model.
func ParseSpecification(text string, model *lps.Specification, quantitative bool, opts ParseOptions) (*ast.StateFormulaSpecification, error) {
	spec, err := parser.ParseStateFormulaSpecification("", text, quantitative)
	if err != nil {
		return nil, err
	}

	if opts.TranslateUserNotation {
		spec = transform.TranslateUserNotation(spec)
	}

	if opts.TypeCheck {
		if err := typecheck.CheckStateFormulaSpecification(spec, model); err != nil {
			return nil, err
		}
	}

	if opts.TranslateRegularFormulas {
		spec = transform.TranslateRegularFormulas(spec)
	}

	if opts.ResolveNameClashes {
		spec = transform.ResolveNameClashes(spec)
	}

	if opts.CheckMonotonicity {
		if err := transform.CheckMonotonicity(spec); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// ParseSpecificationDefault parses a qualitative formula with
// DefaultParseOptions.
func ParseSpecificationDefault(text string, model *lps.Specification) (*ast.StateFormulaSpecification, error) {
	return ParseSpecification(text, model, false, DefaultParseOptions())
}

// PP pretty prints a state formula specification.
func PP(spec *ast.StateFormulaSpecification, fullParens bool) string {
	return ast.Printer{FullParens: fullParens}.StateFormulaSpecification(spec)
}
