package evalstate

import (
	"decimalc/internal/calcerr"
	"decimalc/internal/numeric"
	"decimalc/internal/shared"
)

// Environment is the variable store the evaluator reads from and writes
// to. It is satisfied by *eval.Environment; defined here rather than
// imported from internal/eval to avoid a package cycle (internal/eval
// depends on evalstate, not vice versa).
type Environment interface {
	// Lookup returns the current value bound to name, or ok=false if
	// name is unbound.
	Lookup(name string) (numeric.Value, bool)
	// Slot returns the shared handle backing name, creating a
	// zero-valued binding if name was previously unbound.
	Slot(name string) *shared.Numeric[numeric.Value]
}

// operand is one entry of the evaluator's operand stack. A named
// operand remembers the variable it came from so that assignment
// targets can be resolved and so the final result can be printed as
// "name==value" rather than a bare value.
type operand struct {
	isVar      bool
	name       string
	val        numeric.Value
	isArgCount bool
	argCount   int
}

// Result is the single value left on the operand stack after a
// statement's postfix stream is fully evaluated.
type Result struct {
	Value   numeric.Value
	IsNamed bool
	Name    string
}

// Evaluate walks queue (the postfix stream produced by Parser) against
// a fresh operand stack and env. On success exactly one operand
// remains; it is written into env's "ans" slot and returned.
func Evaluate(queue []Elem, env Environment) (Result, error) {
	var stack []operand

	scratchOf := func(o operand) (numeric.Value, error) {
		if !o.isVar {
			return o.val, nil
		}
		v, ok := env.Lookup(o.name)
		if !ok {
			return nil, calcerr.NewInvalidVariable(o.name)
		}
		return v, nil
	}

	pop := func() (operand, error) {
		if len(stack) == 0 {
			return operand{}, calcerr.NewEvalError("not enough operands on the stack")
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, e := range queue {
		switch e.Kind {
		case ElemNumber:
			stack = append(stack, operand{val: e.NumLit})

		case ElemVariable:
			stack = append(stack, operand{isVar: true, name: e.Name})

		case ElemArgCount:
			stack = append(stack, operand{isArgCount: true, argCount: e.ArgCount})

		case ElemOperator:
			if e.IsUnary {
				x, err := pop()
				if err != nil {
					return Result{}, err
				}
				xv, err := scratchOf(x)
				if err != nil {
					return Result{}, err
				}
				result, err := e.Op.Unary(xv)
				if err != nil {
					return Result{}, calcerr.NewEvalError(err.Error())
				}
				stack = append(stack, operand{val: result})
				continue
			}

			y, err := pop()
			if err != nil {
				return Result{}, err
			}
			x, err := pop()
			if err != nil {
				return Result{}, err
			}
			yv, err := scratchOf(y)
			if err != nil {
				return Result{}, err
			}

			if e.Op.Assigns {
				if !x.isVar {
					return Result{}, calcerr.NewEvalError("left side of \"" + e.Op.ID + "\" is not a variable")
				}
				slot := env.Slot(x.name)
				result, err := e.Op.Binary(slot.Get(), yv)
				if err != nil {
					return Result{}, calcerr.NewEvalError(err.Error())
				}
				slot.Set(result)
				stack = append(stack, operand{isVar: true, name: x.name, val: result})
				continue
			}

			xv, err := scratchOf(x)
			if err != nil {
				return Result{}, err
			}
			result, err := e.Op.Binary(xv, yv)
			if err != nil {
				return Result{}, calcerr.NewEvalError(err.Error())
			}
			stack = append(stack, operand{val: result})

		case ElemFunction:
			cnt, err := pop()
			if err != nil {
				return Result{}, err
			}
			if !cnt.isArgCount {
				return Result{}, calcerr.NewEvalError("function call missing argument count")
			}
			n := cnt.argCount
			if len(stack) < n {
				return Result{}, calcerr.NewEvalError("not enough operands on the stack")
			}
			window := stack[len(stack)-n:]
			args := make([]numeric.Value, n)
			for i, o := range window {
				v, err := scratchOf(o)
				if err != nil {
					return Result{}, err
				}
				args[i] = v
			}
			stack = stack[:len(stack)-n]

			if e.Fn.Arity >= 0 && e.Fn.Arity != n {
				return Result{}, calcerr.NewBadArgCount(e.Fn.ID, n, e.Fn.Arity)
			}
			result, err := e.Fn.Impl(args)
			if err != nil {
				return Result{}, calcerr.NewEvalError(err.Error())
			}
			stack = append(stack, operand{val: result})
		}
	}

	if len(stack) != 1 {
		return Result{}, calcerr.NewEvalError("expression did not reduce to a single value")
	}
	final := stack[0]
	val, err := scratchOf(final)
	if err != nil {
		return Result{}, err
	}
	env.Slot("ans").Set(val)
	return Result{Value: val, IsNamed: final.isVar, Name: final.name}, nil
}
