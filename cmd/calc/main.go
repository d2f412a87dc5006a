// Command calc is the calculator's CLI entry point: batch evaluation of
// a file or stdin by default, plus subcommands for the interactive
// REPL, the remote evaluation server, session persistence, and a small
// stats report. The exit status of a batch run is the number of
// statements that raised a user-visible error.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"decimalc/internal/eval"
	"decimalc/internal/evalstate"
	"decimalc/internal/lexer"
	"decimalc/internal/numeric"
	"decimalc/internal/repl"
	"decimalc/internal/session"
	"decimalc/internal/wsserver"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			showUsage()
			return
		case "repl":
			os.Exit(repl.Start(os.Stdin, os.Stdout, os.Stderr))
		case "serve":
			os.Exit(runServe(args[1:]))
		case "session":
			os.Exit(runSession(args[1:]))
		case "stats":
			os.Exit(runStats(args[1:]))
		}
	}

	os.Exit(runDefault(args))
}

// runDefault is the batch path: no argument reads from stdin; one
// (non-flag) argument opens that file; a second positional argument is
// a warning, not an error.
func runDefault(args []string) int {
	debugTokens, debugPostfix, rest := extractDebugFlags(args)

	if len(rest) == 0 {
		// The token dump needs a second pass over the input, which a
		// pipe can't rewind, so buffer stdin only when it's asked for.
		if debugTokens {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintln(os.Stderr, errors.Wrap(err, "unable to read stdin"))
				return 1
			}
			r := eval.NewRunner(bytes.NewReader(data), eval.NewEnvironment(), os.Stdout, os.Stderr)
			attachDebug(r, debugTokens, debugPostfix, bytes.NewReader(data))
			return r.Run()
		}
		r := eval.NewRunner(os.Stdin, eval.NewEnvironment(), os.Stdout, os.Stderr)
		attachDebug(r, false, debugPostfix, nil)
		return r.Run()
	}

	if len(rest) > 1 {
		fmt.Fprintln(os.Stderr, "warning: only one path argument is used")
	}

	path := rest[0]
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "unable to open %q", path))
		return 1
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "unable to read %q", path))
		return 1
	}

	r := eval.NewRunner(bytes.NewReader(data), eval.NewEnvironment(), os.Stdout, os.Stderr)
	attachDebug(r, debugTokens, debugPostfix, bytes.NewReader(data))
	return r.Run()
}

// extractDebugFlags pulls -debug-tokens/-debug-postfix out of args,
// returning what remains for path resolution.
func extractDebugFlags(args []string) (tokens, postfix bool, rest []string) {
	for _, a := range args {
		switch a {
		case "-debug-tokens":
			tokens = true
		case "-debug-postfix":
			postfix = true
		default:
			rest = append(rest, a)
		}
	}
	return
}

// attachDebug wires cmd/calc's debug flags into r: -debug-postfix dumps
// each statement's postfix stream via kr/pretty before evaluation;
// -debug-tokens re-scans src independently (tokens are consumed inside
// the parser, so dumping them requires a second pass over the same
// bytes) and dumps every token up front.
func attachDebug(r *eval.Runner, tokens, postfix bool, src io.Reader) {
	if tokens {
		sc := lexer.NewScanner(src)
		for {
			tok, err := sc.ScanToken()
			if err != nil {
				break
			}
			pretty.Fprintf(os.Stderr, "%# v\n", tok)
			if tok.Type == lexer.Number {
				_, _ = numeric.ParseStream(sc.Stream())
			}
			if tok.Type == lexer.EndOfInput {
				break
			}
		}
	}
	if postfix {
		r.Debug = func(queue []evalstate.Elem) {
			pretty.Fprintf(os.Stderr, "%# v\n", queue)
		}
	}
}

func runServe(args []string) int {
	addr := ":8642"
	if len(args) > 0 {
		addr = args[0]
	}
	srv := wsserver.New()
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "calc serve"))
		return 1
	}
	return 0
}

func runSession(args []string) int {
	if len(args) == 0 || (args[0] != "list" && len(args) < 2) {
		fmt.Fprintln(os.Stderr, "usage: calc session save|load|list <name>")
		return 1
	}
	dbPath := os.Getenv("CALC_DB_PATH")
	if dbPath == "" {
		dbPath = "calc_sessions.db"
	}
	store, err := session.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "calc session"))
		return 1
	}
	defer store.Close()

	switch args[0] {
	case "list":
		names, err := store.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "calc session list"))
			return 1
		}
		for _, n := range names {
			fmt.Fprintln(os.Stdout, n)
		}
		return 0
	case "save":
		name := args[1]
		env := eval.NewEnvironment()
		r := eval.NewRunner(os.Stdin, env, os.Stdout, os.Stderr)
		r.Run()
		if err := store.Save(name, env); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "calc session save %q", name))
			return 1
		}
		return 0
	case "load":
		name := args[1]
		env := eval.NewEnvironment()
		if err := store.Load(name, env); err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrapf(err, "calc session load %q", name))
			return 1
		}
		r := eval.NewRunner(os.Stdin, env, os.Stdout, os.Stderr)
		return r.Run()
	default:
		fmt.Fprintln(os.Stderr, "usage: calc session save|load|list <name>")
		return 1
	}
}

func runStats(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: calc stats <path>")
		return 1
	}
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "unable to open %q", path))
		return 1
	}
	defer f.Close()

	start := time.Now()
	var errOut bytes.Buffer
	var out bytes.Buffer
	r := eval.NewRunner(f, eval.NewEnvironment(), &out, &errOut)
	failures := r.Run()
	elapsed := time.Since(start)

	lines := bytes.Count(out.Bytes(), []byte{'\n'})
	fmt.Fprintf(os.Stdout, "statements printed: %s\n", humanize.Comma(int64(lines)))
	fmt.Fprintf(os.Stdout, "errors encountered: %s\n", humanize.Comma(int64(failures)))
	fmt.Fprintf(os.Stdout, "elapsed: %s\n", elapsed)
	return failures
}

func showUsage() {
	fmt.Println("calc - arbitrary-precision decimal calculator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  calc [path]                Evaluate a file, or stdin if no path is given")
	fmt.Println("  calc repl                  Start the interactive REPL")
	fmt.Println("  calc serve [addr]          Start a remote evaluation server (default :8642)")
	fmt.Println("  calc session save <name>   Evaluate stdin, then save its bindings")
	fmt.Println("  calc session load <name>   Restore bindings, then evaluate stdin")
	fmt.Println("  calc session list          List saved sessions")
	fmt.Println("  calc stats <path>          Evaluate a file and print run statistics")
	fmt.Println()
	fmt.Println("Flags (default mode):")
	fmt.Println("  -debug-tokens              Dump every scanned token to stderr")
	fmt.Println("  -debug-postfix             Dump each statement's postfix stream to stderr")
}
