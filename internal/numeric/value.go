// Package numeric defines the Value contract the evaluator operates
// against. The evaluator is generic over its number type through this
// interface; BigDec is the production implementation.
package numeric

import (
	"io"

	"decimalc/internal/bigdec"
	"decimalc/internal/shared"
)

// Value is the contract BigDec (and the native test type) must satisfy
// to be usable as the calculator's number type.
type Value interface {
	shared.Cloner[Value]
	Add(Value) Value
	Sub(Value) Value
	Mul(Value) Value
	Div(Value) Value
	Negate() Value
	Compare(Value) int
	IsZero() bool
	String() string
}

// bigDecValue adapts *bigdec.BigDec to the Value interface.
type bigDecValue struct{ b *bigdec.BigDec }

func FromBigDec(b *bigdec.BigDec) Value { return bigDecValue{b} }

func (v bigDecValue) Clone() Value        { return bigDecValue{v.b.Clone()} }
func (v bigDecValue) Add(o Value) Value   { return bigDecValue{bigdec.Add(v.b, o.(bigDecValue).b)} }
func (v bigDecValue) Sub(o Value) Value   { return bigDecValue{bigdec.Subtract(v.b, o.(bigDecValue).b)} }
func (v bigDecValue) Mul(o Value) Value   { return bigDecValue{bigdec.Multiply(v.b, o.(bigDecValue).b)} }
func (v bigDecValue) Div(o Value) Value   { return bigDecValue{bigdec.Div(v.b, o.(bigDecValue).b)} }
func (v bigDecValue) Compare(o Value) int { return bigdec.Compare(v.b, o.(bigDecValue).b) }
func (v bigDecValue) IsZero() bool        { return v.b.IsZero() }
func (v bigDecValue) String() string      { return v.b.String() }
func (v bigDecValue) Negate() Value {
	n := v.b.Clone()
	n.Negate()
	return bigDecValue{n}
}

// ParseStream reads one BigDec-backed Value from r.
func ParseStream(r io.RuneScanner) (Value, error) {
	b, err := bigdec.ParseStream(r)
	if err != nil {
		return nil, err
	}
	return bigDecValue{b}, nil
}

// FromInt builds an exact BigDec-backed Value from a native integer.
func FromInt(n int64) Value { return bigDecValue{bigdec.FromInt(n)} }

// FromFloat builds a BigDec-backed Value from a float64 literal, used for
// the preloaded constants.
func FromFloat(f float64) Value { return bigDecValue{bigdec.FromFloat(f)} }
