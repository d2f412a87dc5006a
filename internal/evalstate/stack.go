// Package evalstate implements the shunting-yard state machine that
// turns a token stream into a postfix (reverse-Polish) stream, and the
// evaluator that walks that stream against an operand stack and a
// variable environment. Token dispatch is explicit over tagged structs
// rather than an interface hierarchy with a virtual eval.
package evalstate

import (
	"decimalc/internal/numeric"
	"decimalc/internal/registry"
)

// ElemKind tags one entry of the postfix output stream.
type ElemKind int

const (
	ElemNumber ElemKind = iota
	ElemVariable
	ElemOperator
	ElemFunction
	ElemArgCount
)

// Elem is one entry of the postfix output stream: the token variants
// that survive into the postfix form.
type Elem struct {
	Kind ElemKind

	// ElemNumber
	NumLit numeric.Value

	// ElemVariable
	Name string

	// ElemOperator
	Op      registry.Operator
	IsUnary bool

	// ElemFunction
	Fn registry.Function

	// ElemArgCount
	ArgCount int
}

// stackKind tags one entry of the shunting-yard operator stack, which
// holds more than operators: function handles, "(" markers, and
// argument-count sentinels.
type stackKind int

const (
	stackOperator stackKind = iota
	stackFunction
	stackLeftParen
	stackArgSentinel
)

type stackElem struct {
	kind     stackKind
	op       registry.Operator
	isUnary  bool
	fn       registry.Function
	sentinel int
}
