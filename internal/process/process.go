// Package process parses and prints mCRL2 process specifications.
package process

import (
	"parsecheck/internal/ast"
	"parsecheck/internal/parser"
	"parsecheck/internal/typecheck"
)

// Options select the optional checks run after parsing.
type Options struct {
	TypeCheck bool
}

// DefaultOptions parse without type checking, so a lone expression such as
// "a . b" is accepted without declarations.
func DefaultOptions() Options {
	return Options{}
}

// Parse parses text with DefaultOptions.
func Parse(text string) (*ast.ProcessSpecification, error) {
	return ParseWithOptions(text, DefaultOptions())
}

func ParseWithOptions(text string, opts Options) (*ast.ProcessSpecification, error) {
	spec, err := parser.ParseProcessSpecification("", text)
	if err != nil {
		return nil, err
	}

	if opts.TypeCheck {
		if err := typecheck.CheckProcessSpecification(spec); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// PP pretty prints a specification. With fullParens unset only the
// parentheses needed to read the text back are printed.
func PP(spec *ast.ProcessSpecification, fullParens bool) string {
	return ast.Printer{FullParens: fullParens}.ProcessSpecification(spec)
}
