package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes mCRL2 process specifications and modal formulas.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `%[^\n]*`, Action: nil},

		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},

		{Name: "Number", Pattern: `[0-9]+`, Action: nil},

		// Keywords are identifiers; see Keywords.
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_']*`, Action: nil},

		// Longest operators first.
		{Name: "Operator", Pattern: `(\|\|_|\|\||&&|=>|==|!=|<=|>=|->|<>|<<|\|>|<\||\+\+|[-+*/.,:;=<>!#@?|\[\]{}()])`, Action: nil},
	},
})

var symbols = Lexer.Symbols()

var (
	CommentToken    = symbols["Comment"]
	WhitespaceToken = symbols["Whitespace"]
	NumberToken     = symbols["Number"]
	IdentToken      = symbols["Ident"]
	OperatorToken   = symbols["Operator"]
)

// Tokenize lexes text and drops comments and whitespace. The returned slice
// always ends with an EOF token.
func Tokenize(filename, text string) ([]lexer.Token, error) {
	lex, err := Lexer.LexString(filename, text)
	if err != nil {
		return nil, err
	}

	var tokens []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == CommentToken || tok.Type == WhitespaceToken {
			continue
		}
		tokens = append(tokens, tok)
		if tok.EOF() {
			return tokens, nil
		}
	}
}

// TokenizeAll lexes text keeping comments, for editors that colour them.
func TokenizeAll(filename, text string) ([]lexer.Token, error) {
	lex, err := Lexer.LexString(filename, text)
	if err != nil {
		return nil, err
	}

	var tokens []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, err
		}
		if tok.EOF() {
			return tokens, nil
		}
		if tok.Type == WhitespaceToken {
			continue
		}
		tokens = append(tokens, tok)
	}
}
