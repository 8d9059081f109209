package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"go.lambdalang.dev/internal/config"
	"go.lambdalang.dev/pkg"
)

const (
	banner   = "lambda REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText = `REPL commands:
  :help    Show this help
  :reset   Forget every variable and function
  :quit    Exit the REPL
`
)

// prompter is the part of *liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(cfg *config.Config, stdout io.Writer, opts ...lambda.Option) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	repl(ln, lambda.NewRunner(stdout, opts...), cfg, stdout)

	if f, err := os.Create(cfg.HistoryFile); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}

	return 0
}

// repl evaluates one complete input at a time against a single runner, so
// variables and functions persist for the whole session. Errors are reported
// and the session goes on.
func repl(in prompter, r *lambda.Runner, cfg *config.Config, out io.Writer) {
	fmt.Fprintln(out, banner)

	for {
		src, ok := readInput(in, cfg)
		if !ok {
			fmt.Fprintln(out)
			return
		}

		code := strings.TrimSpace(src)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			if quit := handleCommand(code, r, out); quit {
				return
			}
			continue
		}

		in.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := r.RunSource(src); err != nil {
			printError(out, err)
		}
	}
}

// readInput keeps reading lines while the parser reports that the input
// ended too early. An empty continuation line stops the accumulation.
func readInput(in prompter, cfg *config.Config) (string, bool) {
	var b strings.Builder

	for {
		prompt := cfg.Prompt
		if b.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}

		line, err := in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the pending input.
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func incomplete(src string) bool {
	_, err := lambda.Parse(src)

	var parseErr *lambda.ParseError
	return errors.As(err, &parseErr) && parseErr.Incomplete()
}

func handleCommand(line string, r *lambda.Runner, out io.Writer) (quit bool) {
	switch cmd := strings.ToLower(strings.Fields(line)[0]); cmd {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(out, helpText)
	case ":reset":
		r.Interpreter().Reset()
		fmt.Fprintln(out, "interpreter reset.")
	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for help.\n", cmd)
	}

	return false
}
