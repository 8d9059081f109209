package lambda

import (
	"fmt"
	"io"
)

// Runner wires a Lexer, a Parser and an Interpreter together and writes
// every non-empty top level result to its output, one per line.
type Runner struct {
	interp *Interpreter
	out    io.Writer
}

func NewRunner(out io.Writer, opts ...Option) *Runner {
	return &Runner{
		interp: NewInterpreter(opts...),
		out:    out,
	}
}

func (r *Runner) Interpreter() *Interpreter {
	return r.interp
}

func (r *Runner) Run(filename string) error {
	lexer, err := NewLexerFromFile(filename)
	if err != nil {
		return err
	}

	return r.run(NewParser(lexer))
}

func (r *Runner) RunFromReader(reader io.Reader) error {
	lexer, err := NewLexerFromReader(reader)
	if err != nil {
		return err
	}

	return r.run(NewParser(lexer))
}

func (r *Runner) RunSource(src string) error {
	return r.run(NewParser(NewLexer(src)))
}

func (r *Runner) run(p *Parser) error {
	results, err := r.interp.Interpret(p)

	for _, v := range results {
		if _, werr := fmt.Fprintln(r.out, v); werr != nil {
			return werr
		}
	}

	return err
}
