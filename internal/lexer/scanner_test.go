package lexer

import (
	"strings"
	"testing"

	"decimalc/internal/numeric"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	sc := NewScanner(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := sc.ScanToken()
		if err != nil {
			t.Fatalf("ScanToken: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == EndOfInput {
			return toks
		}
		if tok.Type == Number {
			if _, err := numeric.ParseStream(sc.Stream()); err != nil {
				t.Fatalf("ParseStream: %v", err)
			}
		}
	}
}

func TestScanTokenClassifiesKinds(t *testing.T) {
	toks := scanAll(t, "x = 1 + 2.5;\n")
	want := []TokenType{Alphanumeric, Operator, Number, Operator, Number, EndOfStatement, EndOfLine, EndOfInput}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, ty)
		}
	}
}

func TestOperatorRunsGreedy(t *testing.T) {
	toks := scanAll(t, "1<=2\n")
	if toks[1].Lexeme != "<=" {
		t.Fatalf("expected <= as one lexeme, got %q", toks[1].Lexeme)
	}
}

func TestParensAreAlwaysSingleCharacter(t *testing.T) {
	toks := scanAll(t, "((\n")
	if toks[0].Lexeme != "(" || toks[1].Lexeme != "(" {
		t.Fatalf("expected two single-char ( tokens, got %+v", toks[:2])
	}
}

func TestInvalidTokenReported(t *testing.T) {
	sc := NewScanner(strings.NewReader("@\n"))
	if _, err := sc.ScanToken(); err == nil {
		t.Fatalf("expected InvalidToken for '@'")
	}
}

func TestLeadingDotNumber(t *testing.T) {
	toks := scanAll(t, ".5\n")
	if toks[0].Type != Number {
		t.Fatalf("expected .5 to start a Number token, got %v", toks[0].Type)
	}
}
