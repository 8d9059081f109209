package lambda

import "strconv"

var tokenNames = map[TokenType]string{
	TokenEOF:              "EOF",
	TokenNewline:          "NEWLINE",
	TokenInteger:          "INTEGER",
	TokenBoolean:          "BOOLEAN",
	TokenIdentifier:       "VARIABLE",
	TokenDefun:            "DEFUN",
	TokenReturn:           "RETURN",
	TokenIf:               "IF",
	TokenElse:             "ELSE",
	TokenLambda:           "LAMBDA",
	TokenPlus:             "PLUS",
	TokenMinus:            "MINUS",
	TokenIncrement:        "PLUSONE",
	TokenDecrement:        "MINUSONE",
	TokenMulti:            "MUL",
	TokenDiv:              "DIV",
	TokenModulo:           "MODULO",
	TokenAssign:           "EQUAL",
	TokenEqual:            "EQEQ",
	TokenNotEqual:         "NEQUAL",
	TokenNot:              "NOT",
	TokenGreater:          "GT",
	TokenLess:             "LT",
	TokenGreaterEqual:     "GTE",
	TokenLessEqual:        "LTE",
	TokenAnd:              "AND",
	TokenOr:               "OR",
	TokenComma:            "COMMA",
	TokenColon:            "COLON",
	TokenOpenParentheses:  "LPAREN",
	TokenCloseParentheses: "RPAREN",
	TokenOpenCurly:        "LBRACE",
	TokenCloseCurly:       "RBRACE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "TokenType(" + strconv.FormatUint(uint64(t), 10) + ")"
}
