package eval

import (
	"fmt"
	"io"

	"decimalc/internal/calcerr"
	"decimalc/internal/evalstate"
	"decimalc/internal/lexer"
)

// Runner drives one parse/evaluate/print/recover cycle per statement
// over a character stream.
type Runner struct {
	parser *evalstate.Parser
	env    *Environment
	Out    io.Writer
	ErrOut io.Writer

	// Debug, when set, is called with each statement's postfix stream
	// before evaluation (cmd/calc's -debug-postfix).
	Debug func([]evalstate.Elem)
}

// NewRunner wires a fresh Parser over r to env, writing results to out
// and diagnostics to errOut.
func NewRunner(r io.Reader, env *Environment, out, errOut io.Writer) *Runner {
	return &Runner{
		parser: evalstate.NewParser(lexer.NewScanner(r)),
		env:    env,
		Out:    out,
		ErrOut: errOut,
	}
}

// Run reads and evaluates statements until EndOfInput, returning the
// number of statements that raised a user-visible error; callers use
// the count as the process exit status.
func (r *Runner) Run() int {
	failures := 0
	for {
		queue, term, err := r.parser.ParseStatement()
		if err != nil {
			r.report(err)
			failures++
			if r.parser.SkipToTerminator() == lexer.EndOfInput {
				return failures
			}
			continue
		}

		// A trailing expression with no terminating newline before
		// end-of-input is parsed but never evaluated. Longstanding
		// behavior, deliberately kept.
		if term == evalstate.TermInput {
			return failures
		}

		if len(queue) == 0 {
			fmt.Fprintln(r.Out)
			failures++
			continue
		}

		if r.Debug != nil {
			r.Debug(queue)
		}

		result, err := evalstate.Evaluate(queue, r.env)
		if err != nil {
			r.report(err)
			failures++
			continue
		}
		if term == evalstate.TermStatement {
			continue
		}
		if result.IsNamed {
			fmt.Fprintf(r.Out, "%s==%s\n", result.Name, result.Value.String())
		} else {
			fmt.Fprintln(r.Out, result.Value.String())
		}
	}
}

// report writes err's diagnostic to ErrOut. CalcError.Error already
// renders the "Invalidating the rest of the statement" trailer for
// parse-time kinds.
func (r *Runner) report(err error) {
	if ce, ok := err.(*calcerr.CalcError); ok {
		fmt.Fprintln(r.ErrOut, ce.Error())
		return
	}
	fmt.Fprintf(r.ErrOut, "Error: %v\n", err)
}
