package repl

import (
	"os"
	"strings"
	"testing"
)

func TestStartEvaluatesLinesAndPersistsBindings(t *testing.T) {
	var out, errOut strings.Builder
	failures := Start(strings.NewReader("x=4\nx*x\nquit\n"), &out, &errOut)
	if failures != 0 {
		t.Fatalf("unexpected failures, stderr=%q", errOut.String())
	}
	if out.String() != "x==4\n16\n" {
		t.Fatalf("out = %q, want %q", out.String(), "x==4\n16\n")
	}
}

func TestStartSkipsBlankLines(t *testing.T) {
	var out, errOut strings.Builder
	failures := Start(strings.NewReader("\n\n1+1\n"), &out, &errOut)
	if failures != 0 {
		t.Fatalf("unexpected failures, stderr=%q", errOut.String())
	}
	if out.String() != "2\n" {
		t.Fatalf("out = %q, want %q", out.String(), "2\n")
	}
}

func TestStartQuitStopsTheLoop(t *testing.T) {
	var out, errOut strings.Builder
	failures := Start(strings.NewReader("quit\n1+1\n"), &out, &errOut)
	if failures != 0 {
		t.Fatalf("unexpected failures")
	}
	if out.String() != "" {
		t.Fatalf("lines after quit should not be evaluated, got %q", out.String())
	}
}

func TestStartAppendsToHistoryFile(t *testing.T) {
	path := t.TempDir() + "/history"
	t.Setenv("CALC_HISTORY", path)

	var out, errOut strings.Builder
	Start(strings.NewReader("1+1\nquit\n"), &out, &errOut)
	Start(strings.NewReader("2+2\nquit\n"), &out, &errOut)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("history file not written: %v", err)
	}
	if string(data) != "1+1\n2+2\n" {
		t.Fatalf("history = %q, want %q", data, "1+1\n2+2\n")
	}
}

func TestStartNonInteractiveSuppressesPrompt(t *testing.T) {
	var out, errOut strings.Builder
	Start(strings.NewReader("1+1\n"), &out, &errOut)
	if strings.Contains(out.String(), prompt) {
		t.Fatalf("non-tty input should not echo the prompt, got %q", out.String())
	}
}
