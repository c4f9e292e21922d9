package lexer

import (
	"testing"

	"github.com/jal-lang/jal/internal/token"
)

func tokenTypes(tokens []token.Token) []token.Type {
	types := make([]token.Type, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func assertTypes(t *testing.T, got []token.Type, want ...token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeVariableDeclaration(t *testing.T) {
	toks := New(`let x := 5`).Tokenize()
	assertTypes(t, tokenTypes(toks), token.LET, token.VARIABLE, token.INFER_TYPE, token.VALUE, token.EOF)
}

func TestTokenizeTypedDeclaration(t *testing.T) {
	toks := New(`const n: int = 1`).Tokenize()
	assertTypes(t, tokenTypes(toks),
		token.CONST, token.VARIABLE, token.ASSIGN_COLON, token.TYPE, token.ASSIGN_EQUAL, token.VALUE, token.EOF)
}

func TestTokenizeOperators(t *testing.T) {
	toks := New(`== != <= >= << .`).Tokenize()
	assertTypes(t, tokenTypes(toks),
		token.EQUAL_EQUAL, token.NOT_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL, token.LIST_PUSH, token.DOT, token.EOF)
}

func TestTokenizeStringLiteralKeepsQuotes(t *testing.T) {
	toks := New(`"hi"`).Tokenize()
	if toks[0].Type != token.VALUE {
		t.Fatalf("got type %s, want VALUE", toks[0].Type)
	}
	if toks[0].Literal != `"hi"` {
		t.Fatalf("got literal %q, want %q", toks[0].Literal, `"hi"`)
	}
}

func TestTokenizeFunctionDeclaration(t *testing.T) {
	toks := New(`fn add(a: int, b: int): int { return a + b }`).Tokenize()
	assertTypes(t, tokenTypes(toks),
		token.FN, token.VARIABLE, token.FN_OPEN_PARAM,
		token.VARIABLE, token.ASSIGN_COLON, token.TYPE, token.COMMA,
		token.VARIABLE, token.ASSIGN_COLON, token.TYPE, token.FN_END_PARAM,
		token.ASSIGN_COLON, token.TYPE, token.SCOPE_OPEN,
		token.RETURN, token.VARIABLE, token.PLUS, token.VARIABLE,
		token.SCOPE_END, token.EOF)
}

func TestSkipsLineComments(t *testing.T) {
	toks := New("let x := 1 // trailing comment\nlet y := 2").Tokenize()
	count := 0
	for _, tk := range toks {
		if tk.Type == token.LET {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected two LET tokens, got %d", count)
	}
}

func TestBooleanAndNullLiterals(t *testing.T) {
	toks := New(`true false null`).Tokenize()
	for i, lit := range []string{"true", "false", "null"} {
		if toks[i].Type != token.VALUE || toks[i].Literal != lit {
			t.Fatalf("token[%d] = %+v, want VALUE %q", i, toks[i], lit)
		}
	}
}
