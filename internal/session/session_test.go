package session

import (
	"path/filepath"
	"testing"

	"decimalc/internal/eval"
	"decimalc/internal/numeric"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	env := eval.NewEnvironment()
	env.Slot("x").Set(numeric.FromInt(42))
	env.Slot("y").Set(numeric.FromFloat(1.5))

	if err := store.Save("work", env); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fresh := eval.NewEnvironment()
	if err := store.Load("work", fresh); err != nil {
		t.Fatalf("Load: %v", err)
	}

	v, ok := fresh.Lookup("x")
	if !ok || v.String() != "42" {
		t.Fatalf("x = %v (ok=%v), want 42", v, ok)
	}
	v, ok = fresh.Lookup("y")
	if !ok || v.String() != "1.5" {
		t.Fatalf("y = %v (ok=%v), want 1.5", v, ok)
	}
}

func TestSaveOverwritesPriorSnapshot(t *testing.T) {
	store := openTestStore(t)

	env := eval.NewEnvironment()
	env.Slot("x").Set(numeric.FromInt(1))
	if err := store.Save("work", env); err != nil {
		t.Fatalf("Save: %v", err)
	}

	env.Slot("x").Set(numeric.FromInt(2))
	if err := store.Save("work", env); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}

	fresh := eval.NewEnvironment()
	if err := store.Load("work", fresh); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := fresh.Lookup("x"); v.String() != "2" {
		t.Fatalf("x = %v, want 2 after overwrite", v)
	}
}

func TestLoadUnknownSessionErrors(t *testing.T) {
	store := openTestStore(t)
	if err := store.Load("missing", eval.NewEnvironment()); err == nil {
		t.Fatalf("Load of an unknown session should error")
	}
}

func TestListReturnsDistinctNames(t *testing.T) {
	store := openTestStore(t)
	env := eval.NewEnvironment()
	env.Slot("x").Set(numeric.FromInt(1))

	if err := store.Save("alpha", env); err != nil {
		t.Fatalf("Save alpha: %v", err)
	}
	if err := store.Save("beta", env); err != nil {
		t.Fatalf("Save beta: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("List = %v, want [alpha beta]", names)
	}
}
