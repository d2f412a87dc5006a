package evalstate

import (
	"strings"
	"testing"

	"decimalc/internal/lexer"
	"decimalc/internal/numeric"
	"decimalc/internal/shared"
)

// testEnv is a minimal Environment for exercising Evaluate in isolation,
// independent of internal/eval's preloaded constants.
type testEnv struct {
	vars map[string]*shared.Numeric[numeric.Value]
}

func newTestEnv() *testEnv {
	return &testEnv{vars: make(map[string]*shared.Numeric[numeric.Value])}
}

func (e *testEnv) Lookup(name string) (numeric.Value, bool) {
	s, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return s.Get(), true
}

func (e *testEnv) Slot(name string) *shared.Numeric[numeric.Value] {
	s, ok := e.vars[name]
	if !ok {
		s = shared.New[numeric.Value](numeric.FromInt(0))
		e.vars[name] = s
	}
	return s
}

func parseAndEval(t *testing.T, env Environment, stmt string) Result {
	t.Helper()
	p := NewParser(lexer.NewScanner(strings.NewReader(stmt)))
	queue, _, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse %q: %v", stmt, err)
	}
	res, err := Evaluate(queue, env)
	if err != nil {
		t.Fatalf("eval %q: %v", stmt, err)
	}
	return res
}

func TestEvaluateArithmeticPrecedence(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "2+3*4\n")
	if r.Value.String() != "14" {
		t.Fatalf("2+3*4 = %v, want 14", r.Value)
	}
}

func TestEvaluatePowerRightAssoc(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "2^3^2\n")
	if r.Value.String() != "512" {
		t.Fatalf("2^3^2 = %v, want 512 (right-assoc: 2^(3^2))", r.Value)
	}
}

func TestEvaluatePowerBindsTighterThanUnaryMinus(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "-2^2\n")
	if r.Value.String() != "-4" {
		t.Fatalf("-2^2 = %v, want -4 (-(2^2), not (-2)^2)", r.Value)
	}
}

func TestEvaluateParenGrouping(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "(2+3)*4\n")
	if r.Value.String() != "20" {
		t.Fatalf("(2+3)*4 = %v, want 20", r.Value)
	}
}

func TestEvaluateChainedAssignment(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "x = y = 5\n")
	if !r.IsNamed || r.Name != "x" || r.Value.String() != "5" {
		t.Fatalf("x = y = 5 -> %+v, want named x==5", r)
	}
	if v, ok := env.Lookup("y"); !ok || v.String() != "5" {
		t.Fatalf("y should also be bound to 5, got %v %v", v, ok)
	}
}

func TestEvaluateFunctionCallFixedArity(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "sum2(3,4)\n")
	if r.Value.String() != "7" {
		t.Fatalf("sum2(3,4) = %v, want 7", r.Value)
	}
}

func TestEvaluateFunctionCallVariadic(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "max(1,9,2,9,3)\n")
	if r.Value.String() != "9" {
		t.Fatalf("max(...) = %v, want 9", r.Value)
	}
}

func TestEvaluateFunctionCallNoArgs(t *testing.T) {
	env := newTestEnv()
	r := parseAndEval(t, env, "help()\n")
	if r.Value.String() != "0" {
		t.Fatalf("help() = %v, want 0", r.Value)
	}
}

func TestEvaluateBadArgCount(t *testing.T) {
	env := newTestEnv()
	p := NewParser(lexer.NewScanner(strings.NewReader("sum2(1)\n")))
	queue, _, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Evaluate(queue, env); err == nil {
		t.Fatalf("sum2(1) should raise BadArgCount")
	}
}

func TestEvaluateImplicitMultiplication(t *testing.T) {
	env := newTestEnv()
	env.Slot("x").Set(numeric.FromInt(3))
	r := parseAndEval(t, env, "2(x+1)\n")
	if r.Value.String() != "8" {
		t.Fatalf("2(x+1) = %v, want 8 (implicit *)", r.Value)
	}
}

func TestEvaluateUnboundVariableIsError(t *testing.T) {
	env := newTestEnv()
	p := NewParser(lexer.NewScanner(strings.NewReader("z\n")))
	queue, _, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Evaluate(queue, env); err == nil {
		t.Fatalf("unbound variable should raise an error")
	}
}

func TestEvaluateAnsUpdatedOnSuccess(t *testing.T) {
	env := newTestEnv()
	parseAndEval(t, env, "5+5\n")
	if v, ok := env.Lookup("ans"); !ok || v.String() != "10" {
		t.Fatalf("ans should be 10, got %v %v", v, ok)
	}
}

