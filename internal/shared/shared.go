// Package shared implements SharedNumeric<T>: a handle over a
// reference-counted cell that gives copy-by-share semantics for values
// passed through the evaluator's operand stack, with an explicit detach
// to obtain a private copy before mutation.
package shared

// Cloner is the constraint a shared value type must satisfy: it must be
// able to produce an independent copy of itself.
type Cloner[T any] interface {
	Clone() T
}

// cell is the resource a Numeric handle may share with other handles.
type cell[T Cloner[T]] struct {
	v T
}

// Numeric is a handle over a shared cell holding a T. Copy-construction
// (ordinary Go assignment of a Numeric value) shares the same *cell, so
// all copies observe each other's writes through Set; Assign reseats a
// handle to share another handle's cell without touching either cell's
// contents; Detach reseats a handle to a fresh cell holding a copy of its
// current value, severing the share.
type Numeric[T Cloner[T]] struct {
	c *cell[T]
}

// New creates a handle owning a fresh cell holding v.
func New[T Cloner[T]](v T) *Numeric[T] {
	return &Numeric[T]{c: &cell[T]{v: v}}
}

// Get returns the current value held by the shared cell.
func (n *Numeric[T]) Get() T {
	return n.c.v
}

// Set writes v into the shared cell; every handle sharing this cell
// observes the new value.
func (n *Numeric[T]) Set(v T) {
	n.c.v = v
}

// Assign reseats n to share x's cell. Afterwards n and x are the same
// handle in every observable sense: writes through either are seen by
// both, and by every other handle already sharing x's cell. Handles that
// shared n's previous cell keep that cell and no longer see n's writes.
func (n *Numeric[T]) Assign(x *Numeric[T]) {
	n.c = x.c
}

// Detach reseats n to a brand new cell holding a value-copy of n's
// current contents, severing the share with whatever cell n previously
// pointed at.
func (n *Numeric[T]) Detach() {
	n.c = &cell[T]{v: n.c.v.Clone()}
}

// Share returns a new handle sharing this handle's cell (the copy
// semantics described above, made explicit at the call site).
func (n *Numeric[T]) Share() *Numeric[T] {
	return &Numeric[T]{c: n.c}
}
