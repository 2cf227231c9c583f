// SPDX-License-Identifier: Apache-2.0

// Command print-ast reads a specification or formula on stdin and prints its
// AST on stdout. It is the native side of the print-ast protocol spoken by
// toolexec.Tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"parsecheck/internal/bridge"
	"parsecheck/internal/lps"
	"parsecheck/internal/source"
	"parsecheck/internal/stateformulas"
)

func main() {
	mcf := flag.Bool("mcf", false, "read a modal formula instead of an mCRL2 specification")
	quantitative := flag.Bool("quantitative", false, "read a quantitative modal formula")
	legacy := flag.Bool("legacy", false, "parse the formula with the convenience defaults")
	parens := flag.Bool("parens", false, "print every parenthesis")

	var opts stateformulas.ParseOptions
	flag.BoolVar(&opts.TranslateUserNotation, "user-notation", false, "translate user notation")
	flag.BoolVar(&opts.TypeCheck, "typecheck", false, "type check the formula")
	flag.BoolVar(&opts.TranslateRegularFormulas, "regular", false, "translate regular formulas")
	flag.BoolVar(&opts.ResolveNameClashes, "name-clashes", false, "resolve name clashes")
	flag.BoolVar(&opts.CheckMonotonicity, "monotonicity", false, "check monotonicity")
	flag.Parse()

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	text, err := source.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := printAST(text, *mcf, *quantitative, *legacy, *parens, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func printAST(text string, mcf, quantitative, legacy, parens bool, opts stateformulas.ParseOptions) (string, error) {
	var (
		p   bridge.Printable
		err error
	)
	native := bridge.Native{}
	switch {
	case !mcf:
		p, err = native.ParseProcessSpecification(text)
	case legacy:
		p, err = native.ParseStateFormulaSpecificationDefault(text, &lps.Specification{})
	default:
		p, err = native.ParseStateFormulaSpecification(text, &lps.Specification{}, quantitative, opts)
	}
	if err != nil {
		return "", err
	}
	return p.PP(parens) + "\n", nil
}
