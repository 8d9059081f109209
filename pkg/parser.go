package lambda

import (
	"fmt"
	"strconv"
)

var additiveOps = map[TokenType]BinaryOp{
	TokenPlus:         BinaryAddition,
	TokenMinus:        BinarySubtraction,
	TokenEqual:        BinaryEqual,
	TokenNotEqual:     BinaryNotEqual,
	TokenGreater:      BinaryGreater,
	TokenLess:         BinaryLess,
	TokenGreaterEqual: BinaryGreaterEqual,
	TokenLessEqual:    BinaryLessEqual,
	TokenAnd:          BinaryAnd,
	TokenOr:           BinaryOr,
}

// && and || also bind at this level, tighter than in additiveOps.
var multiplicativeOps = map[TokenType]BinaryOp{
	TokenMulti:  BinaryMultiplication,
	TokenDiv:    BinaryDivision,
	TokenModulo: BinaryModulo,
	TokenAnd:    BinaryAnd,
	TokenOr:     BinaryOr,
}

var unaryOps = map[TokenType]UnaryOp{
	TokenPlus:  UnaryPositive,
	TokenMinus: UnaryNegative,
	TokenNot:   UnaryNot,
}

type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token
	err       error
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

// Parse is a shorthand for running a Parser over a Lexer on src.
func Parse(src string) (*Block, error) {
	return NewParser(NewLexer(src)).Run()
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Run parses the whole input into a single top level block. The first error
// aborts the parse.
func (p *Parser) Run() (*Block, error) {
	block := &Block{}

	for tok := p.peek(); tok.Typ != TokenEOF; tok = p.peek() {
		if tok.Typ == TokenNewline {
			p.next()
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		block.Statements = append(block.Statements, stmt)
	}

	if p.err != nil {
		return nil, p.err
	}

	return block, nil
}

// peek returns the current token without consuming it. A lexer failure is
// recorded and reported as end of input so that loops terminate; fail and
// expect surface the recorded error.
func (p *Parser) peek() Token {
	if p.buf == nil {
		if p.err != nil {
			return Token{Typ: TokenEOF}
		}

		tok, err := p.tokenizer.Next()
		if err != nil {
			p.err = err
			return Token{Typ: TokenEOF}
		}

		p.buf = &tok
	}

	return *p.buf
}

func (p *Parser) next() Token {
	tok := p.peek()
	p.buf = nil

	return tok
}

// lookahead returns the token after the current one.
func (p *Parser) lookahead() Token {
	p.peek()
	if p.err != nil {
		return Token{Typ: TokenEOF}
	}

	tok, err := p.tokenizer.Peek()
	if err != nil {
		p.err = err
		return Token{Typ: TokenEOF}
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	tok := p.peek()
	if p.err != nil {
		return tok, p.err
	}

	if tok.Typ != typ {
		return tok, &ParseError{
			Loc:      tok.Loc,
			Expected: typ,
			Got:      tok.Typ,
		}
	}

	return p.next(), nil
}

func (p *Parser) fail(tok Token, format string, args ...interface{}) error {
	if p.err != nil {
		return p.err
	}

	return &ParseError{
		Loc: tok.Loc,
		Got: tok.Typ,
		Msg: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) statement() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenIf:
		return p.ifStatement()
	case TokenDefun:
		return p.funcDecl()
	case TokenIdentifier:
		switch p.lookahead().Typ {
		case TokenOpenParentheses:
			p.next() // Skip the name
			return p.funcCall(tok.Value)
		case TokenAssign:
			return p.assignment()
		}

		return p.expr()
	case TokenReturn:
		return p.returnStmt()
	case TokenLambda:
		return p.lambdaExpr()
	default:
		return p.expr()
	}
}

func (p *Parser) returnStmt() (Expr, error) {
	p.next() // return keyword

	if tok := p.peek(); tok.Typ == TokenCloseCurly || tok.Typ == TokenEOF {
		return &ReturnStmt{}, p.err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: value}, nil
}

func (p *Parser) assignment() (Expr, error) {
	name := p.next()

	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Assign{
		Name:  name.Value,
		Value: value,
	}, nil
}

func (p *Parser) ifStatement() (Expr, error) {
	if _, err := p.expect(TokenIf); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	then, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	stmt := &IfExpr{
		Condition: cond,
		Then:      then,
	}

	if !p.check(TokenElse) {
		return stmt, p.err
	}

	p.next() // Skip else

	stmt.Else, err = p.blockStmt()
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

// blockStmt parses '{' block '}'.
func (p *Parser) blockStmt() (*Block, error) {
	if _, err := p.expect(TokenOpenCurly); err != nil {
		return nil, err
	}

	block, err := p.block()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseCurly); err != nil {
		return nil, err
	}

	return block, nil
}

func (p *Parser) block() (*Block, error) {
	block := &Block{}

	for tok := p.peek(); tok.Typ != TokenCloseCurly && tok.Typ != TokenEOF; tok = p.peek() {
		if tok.Typ == TokenNewline {
			p.next()
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		block.Statements = append(block.Statements, stmt)

		if p.check(TokenNewline) {
			p.next()
		}
	}

	return block, nil
}

func (p *Parser) funcDecl() (Expr, error) {
	p.next() // defun keyword

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var params []Expr
	for tok := p.peek(); tok.Typ != TokenCloseParentheses; tok = p.peek() {
		param, err := p.factor()
		if err != nil {
			return nil, err
		}

		params = append(params, param)

		if p.check(TokenComma) {
			p.next()
		}
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		Name:   name.Value,
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) funcCall(name string) (Expr, error) {
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}

	return &FuncCall{
		Name: name,
		Args: args,
	}, nil
}

// arguments parses '(' [expr (',' expr)*] ')'. A missing comma between two
// arguments is tolerated.
func (p *Parser) arguments() ([]Expr, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var args []Expr
	for tok := p.peek(); tok.Typ != TokenCloseParentheses; tok = p.peek() {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.check(TokenComma) {
			p.next()
		}
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) lambdaExpr() (Expr, error) {
	if _, err := p.expect(TokenLambda); err != nil {
		return nil, err
	}

	var params []string
	switch tok := p.peek(); tok.Typ {
	case TokenIdentifier:
		params = append(params, p.next().Value)
	case TokenOpenParentheses:
		p.next()

		for p.check(TokenIdentifier) {
			params = append(params, p.next().Value)

			if p.check(TokenComma) {
				p.next()
			}
		}

		if _, err := p.expect(TokenCloseParentheses); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	lambda := &LambdaExpr{
		Params: params,
		Body:   body,
	}

	if p.check(TokenOpenParentheses) {
		lambda.Args, err = p.arguments()
		if err != nil {
			return nil, err
		}

		lambda.Applied = true
	}

	return lambda, p.err
}

func (p *Parser) expr() (Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := additiveOps[p.peek().Typ]
		if !ok {
			return lhs, p.err
		}

		p.next()

		rhs, err := p.term()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) term() (Expr, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := multiplicativeOps[p.peek().Typ]
		if !ok {
			return lhs, p.err
		}

		p.next()

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) factor() (Expr, error) {
	tok := p.peek()

	if op, ok := unaryOps[tok.Typ]; ok {
		p.next()

		operand, err := p.factor()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operation: op,
			Operand:   operand,
		}, nil
	}

	switch tok.Typ {
	case TokenInteger:
		return p.integer()
	case TokenBoolean:
		p.next()
		return &LiteralExpr{Value: BoolValue(tok.Value == "true")}, nil
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		p.next()

		if p.check(TokenOpenParentheses) {
			return p.funcCall(tok.Value)
		}

		return &Identifier{Name: tok.Value}, p.err
	case TokenIf:
		return p.ifStatement()
	case TokenLambda:
		return p.lambdaExpr()
	}

	return nil, p.fail(tok, "unexpected token %s in factor", tok.Typ)
}

func (p *Parser) integer() (Expr, error) {
	tok := p.next()

	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, p.fail(tok, "integer literal %s out of range", tok.Value)
	}

	return &LiteralExpr{Value: IntValue(v)}, nil
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	p.next() // Skip (

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}
