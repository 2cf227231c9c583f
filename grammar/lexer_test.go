package grammar

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(tokens []lexer.Token) []string {
	var out []string
	for _, tok := range tokens {
		if !tok.EOF() {
			out = append(out, tok.Value)
		}
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := Tokenize("", "a||_b || c|>d <> e->f")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "||_", "b", "||", "c", "|>", "d", "<>", "e", "->", "f"}, values(tokens))
	assert.True(t, tokens[len(tokens)-1].EOF())
}

func TestTokenizeDropsComments(t *testing.T) {
	tokens, err := Tokenize("spec.mcrl2", "act a; % actions\ninit a;")
	require.NoError(t, err)

	assert.Equal(t, []string{"act", "a", ";", "init", "a", ";"}, values(tokens))
	assert.Equal(t, 2, tokens[3].Pos.Line)
	assert.Equal(t, "spec.mcrl2", tokens[3].Pos.Filename)
}

func TestTokenizeTypes(t *testing.T) {
	tokens, err := Tokenize("", "x' 42 (")
	require.NoError(t, err)

	assert.Equal(t, IdentToken, tokens[0].Type)
	assert.Equal(t, "x'", tokens[0].Value)
	assert.Equal(t, NumberToken, tokens[1].Type)
	assert.Equal(t, OperatorToken, tokens[2].Type)
}

func TestTokenizeAllKeepsComments(t *testing.T) {
	tokens, err := TokenizeAll("", "true % trailing")
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, CommentToken, tokens[1].Type)
	assert.Equal(t, "% trailing", tokens[1].Value)
}

func TestTokenizeInvalidInput(t *testing.T) {
	_, err := Tokenize("", "a $ b")
	assert.Error(t, err)

	partial, err := TokenizeAll("", "a $ b")
	assert.Error(t, err)
	assert.Equal(t, []string{"a"}, values(partial))
}

func TestKeywords(t *testing.T) {
	assert.True(t, IsKeyword("nu"))
	assert.True(t, IsKeyword("allow"))
	assert.False(t, IsKeyword("send"))

	for kw := range SectionKeywords {
		assert.True(t, IsKeyword(kw), kw)
	}
	for kw := range SortKeywords {
		assert.True(t, IsKeyword(kw), kw)
	}
}
