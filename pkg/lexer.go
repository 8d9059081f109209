package lambda

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	// EOF is returned by peek and next past the end of the source. It is not a
	// valid rune, so a NUL in the input is lexed like any other character.
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenNewline

	TokenInteger
	TokenBoolean
	TokenIdentifier

	TokenDefun
	TokenReturn
	TokenIf
	TokenElse
	TokenLambda

	TokenPlus
	TokenMinus
	TokenIncrement
	TokenDecrement
	TokenMulti
	TokenDiv
	TokenModulo
	TokenAssign
	TokenEqual
	TokenNotEqual
	TokenNot
	TokenGreater
	TokenLess
	TokenGreaterEqual
	TokenLessEqual
	TokenAnd
	TokenOr

	TokenComma
	TokenColon
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
)

var keywordTable = map[string]TokenType{
	"true":   TokenBoolean,
	"false":  TokenBoolean,
	"defun":  TokenDefun,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"lambda": TokenLambda,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"++": TokenIncrement,
	"-":  TokenMinus,
	"--": TokenDecrement,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"%":  TokenModulo,
	"=":  TokenAssign,
	"==": TokenEqual,
	"!":  TokenNot,
	"!=": TokenNotEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	"&&": TokenAnd,
	"||": TokenOr,
	",":  TokenComma,
	":":  TokenColon,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
}

// doubled lists the operators whose second rune may extend them. A missing
// second rune is only legal when the single rune is an operator on its own.
var doubled = map[rune]rune{
	'+': '+',
	'-': '-',
	'=': '=',
	'!': '=',
	'>': '=',
	'<': '=',
	'&': '&',
	'|': '|',
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

type Location struct {
	Filename string
	Line     int
	Col      int
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}

	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}

	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Col)
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Typ, t.Value)
}

// Tokenizer is the token source consumed by the Parser. Peek must not
// consume.
type Tokenizer interface {
	Next() (Token, error)
	Peek() (Token, error)
	GetFilename() string
}

type cursor struct {
	pos  int
	line int
	col  int
}

type Lexer struct {
	filename string
	src      []rune
	cur      cursor

	start cursor
	tok   Token
	err   error
}

func NewLexer(src string) *Lexer {
	return &Lexer{
		src: []rune(src),
		cur: cursor{line: 1, col: 1},
	}
}

func NewLexerFromReader(reader io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}

	return NewLexer(string(data)), nil
}

func NewLexerFromFile(filename string) (*Lexer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}

	l := NewLexer(string(data))
	l.filename = filename

	return l, nil
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// Next consumes and returns the next token. Once the input is exhausted every
// call returns a TokenEOF.
func (l *Lexer) Next() (Token, error) {
	l.tok, l.err = Token{}, nil

	for state := defaultState; state != nil; {
		state = state(l)
	}

	return l.tok, l.err
}

func (l *Lexer) Peek() (Token, error) {
	saved := l.cur
	defer func() {
		l.cur = saved
	}()

	return l.Next()
}

// Tokenize drains the lexer, excluding the final TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.cur

		switch r := l.peek(); {
		case r == EOF:
			return l.emitValue(TokenEOF, "")
		case isSpace(r):
			l.next()
			continue
		case r == '#':
			return lineCommentState
		case isDigit(r):
			return numberState
		case isLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.next(); r != '\n' && r != EOF; r = l.next() {
	}

	return defaultState
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emitValue(TokenInteger, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isLetter(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.emitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if second, ok := doubled[r]; ok && l.peek() == second {
		l.next()
		op := string([]rune{r, second})
		return l.emitValue(operatorTable[op], op)
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValue(tok, string(r))
	}

	if second, ok := doubled[r]; ok {
		return l.errorf(r, "expected '%c' after '%c'", second, r)
	}

	return l.errorf(r, "unexpected character '%c'", r)
}

func (l *Lexer) errorf(r rune, format string, args ...interface{}) stateFunc {
	l.err = &LexError{
		Loc:  l.location(l.start),
		Char: r,
		Msg:  fmt.Sprintf(format, args...),
	}

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	l.tok = Token{
		Typ:   t,
		Value: val,
		Loc:   l.location(l.start),
	}

	return nil
}

func (l *Lexer) location(c cursor) *Location {
	return &Location{
		Filename: l.filename,
		Line:     c.line,
		Col:      c.col,
	}
}

func (l *Lexer) peek() rune {
	if l.cur.pos >= len(l.src) {
		return EOF
	}

	return l.src[l.cur.pos]
}

func (l *Lexer) next() rune {
	if l.cur.pos >= len(l.src) {
		return EOF
	}

	r := l.src[l.cur.pos]
	l.cur.pos++

	if r == '\n' {
		l.cur.line++
		l.cur.col = 1
	} else {
		l.cur.col++
	}

	return r
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
