package lsp

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"parsecheck/grammar"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens classifies the tokens of text. Lexing stops at the
// first character no rule accepts; the tokens before it are still returned.
func collectSemanticTokens(text string) []SemanticToken {
	lexed, _ := grammar.TokenizeAll("", text)

	var tokens []SemanticToken
	section := ""
	declStart := true
	for i, tok := range lexed {
		switch tok.Type {
		case grammar.CommentToken:
			tokens = append(tokens, makeToken(tok, "comment", 0))
		case grammar.NumberToken:
			tokens = append(tokens, makeToken(tok, "number", 0))
		case grammar.OperatorToken:
			tokens = append(tokens, makeToken(tok, "operator", 0))
			if tok.Value == ";" {
				declStart = true
			}
			continue
		case grammar.IdentToken:
			tokens = append(tokens, classifyIdent(lexed, i, section, declStart))
			if grammar.SectionKeywords[tok.Value] {
				section = tok.Value
				declStart = true
				continue
			}
		}
		if tok.Type != grammar.CommentToken {
			declStart = false
		}
	}
	return tokens
}

// classifyIdent picks a token type for the identifier at lexed[i]. Names at
// the start of an act, proc or sort declaration are marked as declarations.
func classifyIdent(lexed []lexer.Token, i int, section string, declStart bool) SemanticToken {
	tok := lexed[i]
	switch {
	case grammar.SortKeywords[tok.Value]:
		return makeToken(tok, "type", 0)
	case grammar.IsKeyword(tok.Value):
		return makeToken(tok, "keyword", 0)
	}

	switch section {
	case "act":
		// act a, b: Nat; declares every name before the colon.
		if !afterColon(lexed, i) {
			return makeToken(tok, "function", 1)
		}
		return makeToken(tok, "type", 0)
	case "proc":
		if declStart {
			return makeToken(tok, "function", 1)
		}
	case "sort":
		if declStart {
			return makeToken(tok, "type", 1)
		}
	case "var", "glob":
		if !afterColon(lexed, i) {
			return makeToken(tok, "parameter", 1)
		}
		return makeToken(tok, "type", 0)
	}

	if next := nextValue(lexed, i); next == "(" {
		return makeToken(tok, "function", 0)
	}
	return makeToken(tok, "variable", 0)
}

// afterColon reports whether a ':' precedes lexed[i] within its declaration.
func afterColon(lexed []lexer.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch lexed[j].Value {
		case ":":
			return true
		case ";":
			return false
		}
		if grammar.SectionKeywords[lexed[j].Value] {
			return false
		}
	}
	return false
}

func nextValue(lexed []lexer.Token, i int) string {
	for j := i + 1; j < len(lexed); j++ {
		if lexed[j].Type != grammar.CommentToken {
			return lexed[j].Value
		}
	}
	return ""
}

// makeToken creates a semantic token for a lexed token
func makeToken(tok lexer.Token, tokenType string, declModifier int) SemanticToken {
	return SemanticToken{
		Line:           uint32(tok.Pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(tok.Pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(utf8.RuneCountInString(tok.Value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}
