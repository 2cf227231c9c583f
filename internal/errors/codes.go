package errors

// Diagnostic codes shown in brackets after the severity, e.g. "error[E0201]".
//
// Code ranges:
// E0001-E0099: Lexical and syntax errors
// E0100-E0199: Quantitative dialect errors
// E0200-E0299: Declaration and arity errors
// E0300-E0399: Fixpoint errors
// E0900-E0999: Tooling errors
const (
	ErrorSyntax           = "E0001"
	ErrorUnexpectedEnd    = "E0002"
	ErrorMisplacedSection = "E0003"

	ErrorQuantitativeOnly = "E0101"

	ErrorUndeclaredAction  = "E0201"
	ErrorActionArity       = "E0202"
	ErrorUndeclaredProcess = "E0203"
	ErrorProcessArity      = "E0204"
	ErrorDuplicateProcess  = "E0205"
	ErrorNameConflict      = "E0206"
	ErrorUnknownParameter  = "E0207"

	ErrorUnboundVariable = "E0301"
	ErrorVariableArity   = "E0302"
	ErrorNotMonotonic    = "E0303"

	ErrorToolFailure = "E0901"
)

// ErrorDescriptions holds a one-line description per code.
var ErrorDescriptions = map[string]string{
	ErrorSyntax:            "the input does not match the mCRL2 grammar",
	ErrorUnexpectedEnd:     "the input ended before the construct was complete",
	ErrorMisplacedSection:  "a section keyword appears where it is not allowed",
	ErrorQuantitativeOnly:  "a quantitative operator was used in a qualitative formula",
	ErrorUndeclaredAction:  "an action is used without an act declaration",
	ErrorActionArity:       "an action is applied to the wrong number of arguments",
	ErrorUndeclaredProcess: "a process is referenced without a definition",
	ErrorProcessArity:      "a process is applied to the wrong number of arguments",
	ErrorDuplicateProcess:  "a process is defined more than once",
	ErrorNameConflict:      "a name is declared both as an action and as a process",
	ErrorUnknownParameter:  "a process assignment names a variable that is not a parameter",
	ErrorUnboundVariable:   "a fixpoint variable is used outside its mu or nu binder",
	ErrorVariableArity:     "a fixpoint variable is applied to the wrong number of arguments",
	ErrorNotMonotonic:      "a fixpoint variable occurs under an odd number of negations",
	ErrorToolFailure:       "an external tool failed",
}

// GetErrorDescription returns the description for code, or "" when the code
// is unknown.
func GetErrorDescription(code string) string {
	return ErrorDescriptions[code]
}
