package lambda

import "fmt"

type LexError struct {
	Loc  *Location
	Char rune
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s lexer error: %s", e.Loc, e.Msg)
}

type ParseError struct {
	Loc      *Location
	Expected TokenType
	Got      TokenType
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s parse error: %s", e.Loc, e.Msg)
	}

	return fmt.Sprintf("%s parse error: expected token %s, but got %s instead", e.Loc, e.Expected, e.Got)
}

// Incomplete reports whether the input ended before the parser was done, as
// opposed to containing a wrong token.
func (e *ParseError) Incomplete() bool {
	return e.Got == TokenEOF
}

type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("variable '%s' not found", e.Name)
}

type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("function '%s' is not defined", e.Name)
}

type DivisionByZeroError struct {
	Op BinaryOp
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in '%s'", e.Op)
}

type UnsupportedOperatorError struct {
	Op string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator '%s'", e.Op)
}

type EvaluationError struct {
	Expr   Expr
	Reason string
}

func (e *EvaluationError) Error() string {
	return "evaluation error: " + e.Reason
}

func evalErrorf(expr Expr, format string, args ...interface{}) error {
	return &EvaluationError{
		Expr:   expr,
		Reason: fmt.Sprintf(format, args...),
	}
}
