package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"go.lambdalang.dev/internal/config"
	"go.lambdalang.dev/pkg"
)

const (
	appName   = "lambda"
	extension = ".lambda"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  %s [flags] [file%s]\n\nWith no file the REPL is started.\n\nFlags:\n", appName, extension)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "path to a YAML config file (default ~/"+config.DefaultFilename+")")
	verbose := flags.Bool("v", false, "log interpreter activity at debug level")
	maxDepth := flags.Int("max-depth", -1, "maximum call depth, 0 for unlimited (overrides config)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Discover(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *maxDepth >= 0 {
		cfg.MaxCallDepth = *maxDepth
	}

	level, _ := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	opts := []lambda.Option{
		lambda.WithLogger(logger),
		lambda.WithMaxCallDepth(cfg.MaxCallDepth),
	}

	switch flags.NArg() {
	case 0:
		return runREPL(cfg, stdout, opts...)
	case 1:
		return runFile(flags.Arg(0), stdout, stderr, opts...)
	default:
		flags.Usage()
		return 2
	}
}

func runFile(path string, stdout, stderr io.Writer, opts ...lambda.Option) int {
	if filepath.Ext(path) != extension {
		fmt.Fprintf(stderr, "Error: the file must have a %s extension.\n", extension)
		return 1
	}

	r := lambda.NewRunner(stdout, opts...)
	if err := r.Run(path); err != nil {
		printError(stderr, err)
		return 1
	}

	return 0
}

func printError(w io.Writer, err error) {
	var (
		lexErr   *lambda.LexError
		parseErr *lambda.ParseError
		nameErr  *lambda.NameError
		funcErr  *lambda.UndefinedFunctionError
		divErr   *lambda.DivisionByZeroError
		opErr    *lambda.UnsupportedOperatorError
		evalErr  *lambda.EvaluationError
	)

	switch {
	case errors.As(err, &lexErr):
		fmt.Fprintln(w, "Lexer error:", lexErr.Msg, "at", lexErr.Loc)
	case errors.As(err, &parseErr):
		fmt.Fprintln(w, "Syntax error:", parseErr)
	case errors.As(err, &nameErr):
		fmt.Fprintln(w, "Name error: undefined variable", nameErr.Name)
	case errors.As(err, &funcErr):
		fmt.Fprintln(w, "Undefined function:", funcErr.Name)
	case errors.As(err, &divErr):
		fmt.Fprintln(w, "Division by zero in", string(divErr.Op))
	case errors.As(err, &opErr):
		fmt.Fprintln(w, "Unsupported operator:", opErr.Op)
	case errors.As(err, &evalErr):
		fmt.Fprintln(w, "Evaluation error:", evalErr.Reason)
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
