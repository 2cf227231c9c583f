// SPDX-License-Identifier: Apache-2.0

// Command libparsecheck builds the bridge as a C shared library:
//
//	go build -buildmode=c-shared -o libparsecheck.so ./cmd/libparsecheck
//
// Every print function copies its input, returns a string the caller releases
// with parsecheck_free, and on failure returns NULL with the message in
// *err (also released with parsecheck_free).
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"parsecheck/internal/bridge"
)

// call runs fn on text and returns either the printed AST or the error
// message.
func call(fn func(string) (string, error), text string) (out string, msg string, ok bool) {
	out, err := fn(text)
	if err != nil {
		return "", err.Error(), false
	}
	return out, "", true
}

func export(fn func(string) (string, error), input *C.char, errOut **C.char) *C.char {
	out, msg, ok := call(fn, C.GoString(input))
	if !ok {
		if errOut != nil {
			*errOut = C.CString(msg)
		}
		return nil
	}
	if errOut != nil {
		*errOut = nil
	}
	return C.CString(out)
}

//export parsecheck_print_ast_mcrl2
func parsecheck_print_ast_mcrl2(input *C.char, errOut **C.char) *C.char {
	return export(bridge.PrintProcessSpecification, input, errOut)
}

//export parsecheck_print_ast_mcf
func parsecheck_print_ast_mcf(input *C.char, errOut **C.char) *C.char {
	return export(bridge.PrintStateFormula, input, errOut)
}

//export parsecheck_print_ast_quantitative_mcf
func parsecheck_print_ast_quantitative_mcf(input *C.char, errOut **C.char) *C.char {
	return export(bridge.PrintQuantitativeStateFormula, input, errOut)
}

//export parsecheck_print_ast_mcf_default
func parsecheck_print_ast_mcf_default(input *C.char, errOut **C.char) *C.char {
	return export(bridge.PrintStateFormulaDefault, input, errOut)
}

//export parsecheck_free
func parsecheck_free(p *C.char) {
	C.free(unsafe.Pointer(p))
}

func main() {}
