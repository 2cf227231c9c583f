package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"parsecheck/internal/bridge"
	diag "parsecheck/internal/errors"
	"parsecheck/internal/parser"
	"parsecheck/internal/process"
	"parsecheck/internal/stateformulas"
)

// diagnose parses text the way its extension says and reports every
// rejection. A document that parses has no diagnostics.
func (h *Handler) diagnose(uri, text string) []protocol.Diagnostic {
	mode := modeOf(uri)

	var err error
	switch {
	case h.TypeCheck && mode == bridge.ModeProcess:
		_, err = process.ParseWithOptions(text, process.Options{TypeCheck: true})
	case h.TypeCheck:
		opts := stateformulas.DefaultParseOptions()
		_, err = stateformulas.ParseSpecification(text, nil, mode == bridge.ModeQuantitativeFormula, opts)
	default:
		_, err = h.bridge.Print(mode, text)
	}

	return ConvertError(err, text)
}

// ConvertError transforms a parse or check failure into LSP diagnostics.
// Each entry of a parser.ErrorList becomes its own diagnostic.
func ConvertError(err error, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	switch e := err.(type) {
	case parser.ErrorList:
		for _, perr := range e {
			diagnostics = append(diagnostics, convertParseError(perr, text))
		}
	case participle.Error:
		diagnostics = append(diagnostics, convertParseError(e, text))
	default:
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("parse-checker"),
			Message:  err.Error(),
		})
	}
	return diagnostics
}

func convertParseError(err participle.Error, text string) protocol.Diagnostic {
	d := diag.FromParseError(err, text)

	// Lexer positions are 1-based; errors without a position land on the
	// first character.
	line := max(d.Position.Line-1, 0)
	char := max(d.Position.Column-1, 0)

	message := d.Message
	for _, s := range d.Suggestions {
		message += "\n" + s.Message
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(char)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(char + max(d.Length, 1))},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   ptrString("parse-checker"),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
