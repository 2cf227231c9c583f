package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/internal/ast"
)

// ParseError is a rejection of the input text at a position. It satisfies
// participle.Error so lexer and parser failures share one reporting path.
type ParseError struct {
	Msg string
	Pos lexer.Position
}

var (
	_ participle.Error = (*ParseError)(nil)
	_ participle.Error = ErrorList(nil)
)

func (e *ParseError) Message() string          { return e.Msg }
func (e *ParseError) Position() lexer.Position { return e.Pos }

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList is returned by the parse entry points when the input is rejected.
// It is never empty.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// First returns the earliest reported error.
func (l ErrorList) First() *ParseError {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

func fromLexerError(err error) ErrorList {
	if perr, ok := err.(participle.Error); ok {
		return ErrorList{{Msg: perr.Message(), Pos: perr.Position()}}
	}
	return ErrorList{{Msg: err.Error()}}
}

// Message and Position make the list itself a participle.Error reporting
// its first entry.
func (l ErrorList) Message() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].Msg
}

func (l ErrorList) Position() lexer.Position {
	if len(l) == 0 {
		return lexer.Position{}
	}
	return l[0].Pos
}

// NewError creates a ParseError for a rejection found after parsing, such as
// a type or monotonicity violation.
func NewError(pos ast.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Msg: fmt.Sprintf(format, args...),
		Pos: lexer.Position{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		},
	}
}
