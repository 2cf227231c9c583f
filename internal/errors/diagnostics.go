package errors

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/internal/ast"
	"parsecheck/grammar"
)

// DiagnosticBuilder provides a fluent interface for building diagnostics
type DiagnosticBuilder struct {
	d Diagnostic
}

func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{d: Diagnostic{Level: Error, Code: code, Message: message, Position: pos, Length: 1}}
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.d.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// PositionOf converts a lexer position to an AST position.
func PositionOf(pos lexer.Position) ast.Position {
	return ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// classifier maps a message shape to a code. The first group, when
// present, is the offending name.
type classifier struct {
	pattern *regexp.Regexp
	code    string
	help    string
}

var classifiers = []classifier{
	{regexp.MustCompile(`^undeclared action '([^']+)'`), ErrorUndeclaredAction,
		"actions must be declared in an act section"},
	{regexp.MustCompile(`^action '([^']+)' is not declared with`), ErrorActionArity, ""},
	{regexp.MustCompile(`^undeclared (?:action or )?process '([^']+)'`), ErrorUndeclaredProcess,
		"processes must be defined in a proc section"},
	{regexp.MustCompile(`^process '([^']+)' expects`), ErrorProcessArity, ""},
	{regexp.MustCompile(`^process '([^']+)' is defined twice`), ErrorDuplicateProcess, ""},
	{regexp.MustCompile(`^'([^']+)' is declared both as an action and as a process`), ErrorNameConflict, ""},
	{regexp.MustCompile(`^'([^']+)' is not a parameter of process`), ErrorUnknownParameter, ""},
	{regexp.MustCompile(`^unbound fixpoint variable '([^']+)'`), ErrorUnboundVariable,
		"fixpoint variables are bound by an enclosing mu or nu"},
	{regexp.MustCompile(`^fixpoint variable '([^']+)' expects`), ErrorVariableArity, ""},
	{regexp.MustCompile(`^fixpoint variable '([^']+)' occurs under an odd number of negations`), ErrorNotMonotonic,
		"move the negation inwards or bind the variable with the dual fixpoint"},
	{regexp.MustCompile(`^(?:operator|numeric constant) '([^']+)' is only available in quantitative formulas`), ErrorQuantitativeOnly,
		"parse the formula in quantitative mode"},
	{regexp.MustCompile(`(?:unexpected section|is not allowed in a|duplicate init section)`), ErrorMisplacedSection, ""},
	{regexp.MustCompile(`found end of input`), ErrorUnexpectedEnd, ""},
}

var declaredName = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_']*`)

// FromParseError classifies err by its message. Undeclared names get
// suggestions drawn from the identifiers in source.
func FromParseError(err participle.Error, source string) Diagnostic {
	pos := PositionOf(err.Position())
	msg := err.Message()

	for _, c := range classifiers {
		m := c.pattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		b := NewDiagnostic(c.code, msg, pos)
		if len(m) > 1 {
			b.WithLength(len(m[1]))
			if c.code == ErrorUndeclaredAction || c.code == ErrorUndeclaredProcess || c.code == ErrorUnboundVariable {
				similar := findSimilarNames(m[1], identifiers(source))
				switch len(similar) {
				case 0:
				case 1:
					b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
				default:
					b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
				}
			}
		}
		if c.help != "" {
			b.WithHelp(c.help)
		}
		return b.Build()
	}

	return NewDiagnostic(ErrorSyntax, msg, pos).Build()
}

// identifiers lists the distinct non-keyword names in source, sorted.
func identifiers(source string) []string {
	seen := map[string]bool{}
	for _, name := range declaredName.FindAllString(source, -1) {
		if !grammar.IsKeyword(name) {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
