// Package lexer reads tokens from a character stream, classifying
// lexemes as a numeric literal, an identifier, an operator, or a
// statement/line/file terminator. Numeric literals are not lexed as
// text here; the scanner only recognizes where one starts and leaves
// the digits on the stream for the numeric reader.
package lexer

import (
	"io"
	"unicode"

	"decimalc/internal/calcerr"
	"decimalc/internal/charstream"
	"decimalc/internal/registry"
)

// TokenType classifies a lexeme. Operator and Alphanumeric tokens are
// resolved further by the parser (infix vs prefix, function vs
// variable); the scanner only separates the broad kinds.
type TokenType int

const (
	Number TokenType = iota
	Alphanumeric
	Operator
	EndOfStatement
	EndOfLine
	EndOfInput
)

func (t TokenType) String() string {
	switch t {
	case Number:
		return "Number"
	case Alphanumeric:
		return "Alphanumeric"
	case Operator:
		return "Operator"
	case EndOfStatement:
		return "EndOfStatement"
	case EndOfLine:
		return "EndOfLine"
	case EndOfInput:
		return "EndOfInput"
	default:
		return "Unknown"
	}
}

// Token is one lexeme plus its source position for diagnostics. Number
// tokens carry no Lexeme: the caller reads the literal's digits itself
// via Scanner.Stream, pushed back to just before the first digit.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// Scanner reads tokens one at a time from a charstream.Stream.
type Scanner struct {
	s       *charstream.Stream
	charset map[rune]bool
}

// NewScanner wraps r in a charstream.Stream and prepares a Scanner over
// it, using the registry's operator charset to classify operator runes.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: charstream.New(r), charset: registry.OperatorCharset()}
}

// Stream exposes the underlying character stream so the caller (the
// parser) can delegate numeric-literal parsing to it directly.
func (sc *Scanner) Stream() io.RuneScanner { return sc.s }

// ScanToken reads and returns the next token, skipping horizontal
// whitespace first.
func (sc *Scanner) ScanToken() (Token, error) {
	sc.skipHorizontalSpace()
	line, col := sc.s.Position()

	r, _, err := sc.s.ReadRune()
	if err == io.EOF {
		return Token{Type: EndOfInput, Line: line, Column: col}, nil
	}
	if err != nil {
		return Token{}, err
	}

	switch {
	case r == '\n':
		return Token{Type: EndOfLine, Lexeme: "\n", Line: line, Column: col}, nil
	case r == ';':
		return Token{Type: EndOfStatement, Lexeme: ";", Line: line, Column: col}, nil
	case isDigit(r) || r == '.':
		_ = sc.s.UnreadRune()
		return Token{Type: Number, Line: line, Column: col}, nil
	case isAlpha(r):
		lexeme := sc.identifier(r)
		return Token{Type: Alphanumeric, Lexeme: lexeme, Line: line, Column: col}, nil
	case r == '(' || r == ')':
		return Token{Type: Operator, Lexeme: string(r), Line: line, Column: col}, nil
	case sc.charset[r]:
		lexeme := sc.operatorRun(r)
		return Token{Type: Operator, Lexeme: lexeme, Line: line, Column: col}, nil
	default:
		return Token{}, calcerr.NewInvalidToken(string(r)).WithLocation(line, col)
	}
}

func (sc *Scanner) skipHorizontalSpace() {
	for {
		r, ok := sc.s.Peek()
		if !ok || r == '\n' || (r != ' ' && r != '\t' && r != '\r') {
			return
		}
		_, _, _ = sc.s.ReadRune()
	}
}

func (sc *Scanner) identifier(first rune) string {
	lexeme := []rune{first}
	for {
		r, ok := sc.s.Peek()
		if !ok || !(isAlpha(r) || isDigit(r)) {
			break
		}
		_, _, _ = sc.s.ReadRune()
		lexeme = append(lexeme, r)
	}
	return string(lexeme)
}

func (sc *Scanner) operatorRun(first rune) string {
	lexeme := []rune{first}
	for {
		r, ok := sc.s.Peek()
		if !ok || !sc.charset[r] || r == '(' || r == ')' {
			break
		}
		_, _, _ = sc.s.ReadRune()
		lexeme = append(lexeme, r)
	}
	return string(lexeme)
}

func isAlpha(r rune) bool { return unicode.IsLetter(r) }
func isDigit(r rune) bool { return unicode.IsDigit(r) }
