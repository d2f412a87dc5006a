package numeric

import (
	"strconv"
	"strings"
	"testing"
)

func TestParseStreamAndArithmetic(t *testing.T) {
	a, err := ParseStream(strings.NewReader("12.5"))
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	b, err := ParseStream(strings.NewReader("7.5"))
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	if got := a.Add(b).String(); got != "20" {
		t.Fatalf("12.5+7.5 = %q, want 20", got)
	}
	if got := a.Sub(b).String(); got != "5" {
		t.Fatalf("12.5-7.5 = %q, want 5", got)
	}
}

func TestNegateDoesNotMutateOriginal(t *testing.T) {
	v := FromInt(5)
	n := v.Negate()
	if v.String() != "5" {
		t.Fatalf("Negate should not mutate the receiver, v = %q", v.String())
	}
	if n.String() != "-5" {
		t.Fatalf("n = %q, want -5", n.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	v := FromInt(3)
	c := v.Clone()
	if v.Compare(c) != 0 {
		t.Fatalf("clone should compare equal to original")
	}
}

func TestIsZero(t *testing.T) {
	if !FromInt(0).IsZero() {
		t.Fatalf("FromInt(0) should be zero")
	}
	if FromInt(1).IsZero() {
		t.Fatalf("FromInt(1) should not be zero")
	}
}

// nativeValue is a float64-backed Value used to check that the
// evaluator-facing contract is satisfiable by a native number type, not
// just by BigDec.
type nativeValue float64

func native(f float64) Value { return nativeValue(f) }

func (v nativeValue) Clone() Value      { return v }
func (v nativeValue) Add(o Value) Value { return v + o.(nativeValue) }
func (v nativeValue) Sub(o Value) Value { return v - o.(nativeValue) }
func (v nativeValue) Mul(o Value) Value { return v * o.(nativeValue) }
func (v nativeValue) Div(o Value) Value { return v }
func (v nativeValue) Negate() Value     { return -v }
func (v nativeValue) IsZero() bool      { return v == 0 }
func (v nativeValue) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v nativeValue) Compare(o Value) int {
	w := o.(nativeValue)
	switch {
	case v < w:
		return -1
	case v > w:
		return 1
	default:
		return 0
	}
}

func TestNativeValueSatisfiesContract(t *testing.T) {
	a, b := native(2.5), native(4)
	if got := a.Add(b).String(); got != "6.5" {
		t.Fatalf("2.5+4 = %q, want 6.5", got)
	}
	if a.Compare(b) >= 0 {
		t.Fatalf("2.5 should compare below 4")
	}
	if got := a.Mul(b).Negate().String(); got != "-10" {
		t.Fatalf("-(2.5*4) = %q, want -10", got)
	}
	if !native(0).IsZero() {
		t.Fatalf("native zero should report IsZero")
	}
}

func TestFromFloatRoundTrip(t *testing.T) {
	if got := FromFloat(9.81).String(); got != "9.81" {
		t.Fatalf("FromFloat(9.81).String() = %q, want 9.81", got)
	}
}
