// Package eval wires evalstate's parser and evaluator to a concrete
// variable Environment and a per-statement read loop with error
// recovery.
package eval

import (
	"decimalc/internal/numeric"
	"decimalc/internal/shared"
)

// Environment is the mutable variable store threaded through a
// calculator session. It satisfies evalstate.Environment.
type Environment struct {
	vars map[string]*shared.Numeric[numeric.Value]
}

// NewEnvironment returns an Environment preloaded with the calculator's
// fixed constants: Pi=3.14, Ga=9.81, ans=0, and E=2.41. E is not
// Euler's number; the value is historical and deliberately kept.
func NewEnvironment() *Environment {
	e := &Environment{vars: make(map[string]*shared.Numeric[numeric.Value])}
	e.vars["Pi"] = shared.New[numeric.Value](numeric.FromFloat(3.14))
	e.vars["Ga"] = shared.New[numeric.Value](numeric.FromFloat(9.81))
	e.vars["E"] = shared.New[numeric.Value](numeric.FromFloat(2.41))
	e.vars["ans"] = shared.New[numeric.Value](numeric.FromInt(0))
	return e
}

// Lookup returns the value currently bound to name.
func (e *Environment) Lookup(name string) (numeric.Value, bool) {
	slot, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return slot.Get(), true
}

// Slot returns the shared handle backing name, creating a zero-valued
// binding if name is unbound, so an assignment target can always be
// resolved.
func (e *Environment) Slot(name string) *shared.Numeric[numeric.Value] {
	slot, ok := e.vars[name]
	if !ok {
		slot = shared.New[numeric.Value](numeric.FromInt(0))
		e.vars[name] = slot
	}
	return slot
}

// Names returns every currently bound variable name, for session
// persistence (internal/session).
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	return names
}
