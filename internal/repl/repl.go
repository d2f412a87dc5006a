// Package repl implements the interactive calculator loop: one prompt,
// one line, evaluated against a single Environment kept alive across
// the whole session. The prompt only appears when stdin is a terminal;
// piped input is evaluated the same way without it.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"decimalc/internal/eval"
)

const prompt = ">> "

// Start runs the interactive loop, reading lines from in and writing
// prompts/results/diagnostics to out/errOut. It returns the number of
// statements that raised a user-visible error, mirroring
// eval.Runner.Run's exit-status convention.
func Start(in io.Reader, out, errOut io.Writer) int {
	env := eval.NewEnvironment()
	scanner := bufio.NewScanner(in)

	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}

	history := loadHistory()

	failures := 0
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "quit" {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		history = append(history, line)

		r := eval.NewRunner(strings.NewReader(line+"\n"), env, out, errOut)
		failures += r.Run()
	}
	saveHistory(history)
	return failures
}

// loadHistory reads prior session lines from the file named by
// CALC_HISTORY, if set. There is no arrow-key recall (the loop reads
// whole lines, not raw terminal input); the slice exists so a session's
// lines survive into the history file across runs.
func loadHistory() []string {
	path := os.Getenv("CALC_HISTORY")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func saveHistory(history []string) {
	path := os.Getenv("CALC_HISTORY")
	if path == "" || len(history) == 0 {
		return
	}
	_ = os.WriteFile(path, []byte(strings.Join(history, "\n")+"\n"), 0o644)
}
