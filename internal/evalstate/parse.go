package evalstate

import (
	"decimalc/internal/calcerr"
	"decimalc/internal/lexer"
	"decimalc/internal/numeric"
	"decimalc/internal/registry"
)

// Terminator reports which of the three statement-ending tokens closed
// out a call to Parser.ParseStatement.
type Terminator int

const (
	TermStatement Terminator = iota // ";" — suppress printing
	TermLine                        // "\n" — print
	TermInput                       // EOF — stop; eval.Runner does not evaluate this statement
)

// Parser is a shunting-yard state machine: it reads tokens from a
// lexer.Scanner one statement at a time and produces a postfix
// (reverse-Polish) Elem stream ready for Evaluate.
type Parser struct {
	sc       *lexer.Scanner
	state    registry.State
	opStack  []stackElem
	output   []Elem
	argCount int
}

// NewParser wraps sc in a Parser, starting in the WANT_VAL state.
func NewParser(sc *lexer.Scanner) *Parser {
	return &Parser{sc: sc, state: registry.WantVal}
}

func (p *Parser) reset() {
	p.opStack = p.opStack[:0]
	p.output = p.output[:0]
	p.argCount = -1
	p.state = registry.WantVal
}

func (p *Parser) pushStack(e stackElem) { p.opStack = append(p.opStack, e) }

func (p *Parser) stackTop() (stackElem, bool) {
	if len(p.opStack) == 0 {
		return stackElem{}, false
	}
	return p.opStack[len(p.opStack)-1], true
}

func (p *Parser) popStack() stackElem {
	top := p.opStack[len(p.opStack)-1]
	p.opStack = p.opStack[:len(p.opStack)-1]
	return top
}

// popToOutput pops the operator-stack top directly onto the output queue,
// used by the precedence-climbing loop and by statement-end draining.
func (p *Parser) popToOutput() {
	top := p.popStack()
	if top.kind == stackOperator {
		p.output = append(p.output, Elem{Kind: ElemOperator, Op: top.op, IsUnary: top.isUnary})
	}
}

// ParseStatement reads and parses tokens up to (and including) the next
// statement/line/file terminator, returning the postfix stream built for
// that one statement. On a parse-time error (InvalidToken, InvalidOp,
// MalformedNumber) the caller is responsible for recovery — see
// SkipToTerminator — since the stream position has not yet reached a
// terminator.
func (p *Parser) ParseStatement() ([]Elem, Terminator, error) {
	p.reset()
	for {
		tok, err := p.sc.ScanToken()
		if err != nil {
			return nil, 0, err
		}

		// The very first token encountered inside a "(" that isn't ")"
		// bumps the running argument count from 0 to 1, so a single
		// argument with no comma is still counted once.
		if tok.Lexeme != ")" && p.argCount == 0 {
			p.argCount = 1
		}

		switch tok.Type {
		case lexer.Number:
			val, perr := numeric.ParseStream(p.sc.Stream())
			if perr != nil {
				return nil, 0, calcerr.NewMalformedNumber().WithLocation(tok.Line, tok.Column)
			}
			p.output = append(p.output, Elem{Kind: ElemNumber, NumLit: val})
			p.state = registry.HaveVal

		case lexer.Alphanumeric:
			if fn, ok := registry.FindFunction(tok.Lexeme); ok && p.state == registry.WantVal {
				p.pushStack(stackElem{kind: stackFunction, fn: fn})
				p.state = registry.WantLeftParen
			} else {
				p.output = append(p.output, Elem{Kind: ElemVariable, Name: tok.Lexeme})
				p.state = registry.HaveVal
			}

		case lexer.Operator:
			if err := p.handleOperator(tok); err != nil {
				return nil, 0, err
			}

		case lexer.EndOfStatement, lexer.EndOfLine, lexer.EndOfInput:
			if err := p.drainToEnd(tok); err != nil {
				return nil, 0, err
			}
			out := p.output
			p.state = registry.WantVal
			return out, termFor(tok.Type), nil
		}
	}
}

// SkipToTerminator discards input up to and including the next
// statement/line/file terminator, without building any output, and
// resets parser state to WANT_VAL. Used by the per-statement error
// handler to recover after a parse-time error.
func (p *Parser) SkipToTerminator() lexer.TokenType {
	for {
		tok, err := p.sc.ScanToken()
		if err != nil {
			continue
		}
		switch tok.Type {
		case lexer.Number:
			_, _ = numeric.ParseStream(p.sc.Stream())
		case lexer.EndOfStatement, lexer.EndOfLine, lexer.EndOfInput:
			p.reset()
			return tok.Type
		}
	}
}

func termFor(t lexer.TokenType) Terminator {
	switch t {
	case lexer.EndOfStatement:
		return TermStatement
	case lexer.EndOfLine:
		return TermLine
	default:
		return TermInput
	}
}

func (p *Parser) handleOperator(tok lexer.Token) error {
	switch tok.Lexeme {
	case ",":
		return p.handleComma(tok)
	case "(":
		p.handleLeftParen()
		return nil
	case ")":
		return p.handleRightParen(tok)
	default:
		return p.handleGenericOperator(tok)
	}
}

// handleComma pops operators to output until "(" is at the stack top
// (without popping it), bumps the running argument count, and returns
// to WANT_VAL.
func (p *Parser) handleComma(tok lexer.Token) error {
	if p.state != registry.HaveVal {
		return calcerr.NewInvalidOp(",").WithLocation(tok.Line, tok.Column)
	}
	p.argCount++
	for {
		top, ok := p.stackTop()
		if !ok || top.kind == stackLeftParen {
			break
		}
		p.popToOutput()
	}
	p.state = registry.WantVal
	return nil
}

// handleLeftParen pushes an argument-count sentinel and a "(" marker.
// A "(" arriving with a value already in hand means implicit
// multiplication; the synthesized "*" is pushed directly, without
// running it through the generic precedence-climbing loop other infix
// operators get.
func (p *Parser) handleLeftParen() {
	if p.state == registry.WantLeftParen {
		p.state = registry.WantVal
	}
	if p.state == registry.HaveVal {
		p.pushStack(stackElem{kind: stackOperator, op: registry.Infix["*"]})
		p.state = registry.WantVal
	}
	p.pushStack(stackElem{kind: stackArgSentinel, sentinel: p.argCount})
	p.pushStack(stackElem{kind: stackLeftParen})
	p.argCount = 0
}

// handleRightParen drains operators to the matching "(", restores the
// outer argument count from the sentinel, and, when the paren group was
// a function's argument list, emits the inner count and the function.
// An immediate ")" in WANT_VAL is the empty-argument-list case: the
// function receives zero arguments.
func (p *Parser) handleRightParen(tok lexer.Token) error {
	if p.state == registry.WantVal {
		p.state = registry.HaveVal
	}
	innerCount := p.argCount

	for {
		top, ok := p.stackTop()
		if !ok {
			return calcerr.NewInvalidToken(")").WithLocation(tok.Line, tok.Column)
		}
		if top.kind == stackLeftParen {
			break
		}
		p.popToOutput()
	}
	p.popStack() // the "("

	sentinel, ok := p.stackTop()
	if !ok || sentinel.kind != stackArgSentinel {
		return calcerr.NewInvalidToken(")").WithLocation(tok.Line, tok.Column)
	}
	p.popStack()
	p.argCount = sentinel.sentinel

	if top, ok := p.stackTop(); ok && top.kind == stackFunction {
		p.popStack()
		p.output = append(p.output, Elem{Kind: ElemArgCount, ArgCount: innerCount})
		p.output = append(p.output, Elem{Kind: ElemFunction, Fn: top.fn})
	}
	p.state = registry.HaveVal
	return nil
}

// handleGenericOperator resolves the lexeme by parser state, then runs
// the precedence-climbing pop loop before pushing the new operator.
func (p *Parser) handleGenericOperator(tok lexer.Token) error {
	op, ok := registry.FindOperator(p.state, tok.Lexeme)
	if !ok {
		return calcerr.NewInvalidOp(tok.Lexeme).WithLocation(tok.Line, tok.Column)
	}
	isUnary := op.Binary == nil

	for {
		top, ok := p.stackTop()
		if !ok || top.kind != stackOperator {
			break
		}
		op2 := top.op
		if (op.Assoc == registry.Left && op.Prec == op2.Prec) || op.Prec > op2.Prec {
			p.popToOutput()
			continue
		}
		break
	}
	p.pushStack(stackElem{kind: stackOperator, op: op, isUnary: isUnary})

	if p.state == registry.HaveVal {
		if _, isInfix := registry.Infix[tok.Lexeme]; isInfix {
			p.state = registry.WantVal
		}
		// else: postfix operator, state remains HAVE_VAL.
	}
	// else: prefix operator found in WANT_VAL/WANT_LEFTP, state stays WANT_VAL.
	return nil
}

// drainToEnd implements the EndOfStatement/EndOfLine/EndOfInput bullet:
// drain the operator stack to output, raising InvalidToken if an
// unmatched "(" remains.
func (p *Parser) drainToEnd(tok lexer.Token) error {
	for {
		top, ok := p.stackTop()
		if !ok {
			return nil
		}
		if top.kind == stackLeftParen || top.kind == stackArgSentinel {
			return calcerr.NewInvalidToken("(").WithLocation(tok.Line, tok.Column)
		}
		p.popToOutput()
	}
}
