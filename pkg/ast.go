package lambda

// Expr is any node of the syntax tree. The set of implementations is closed:
// only the types in this file satisfy it.
type Expr interface {
	exprNode()
}

type LiteralExpr struct {
	Value Value
}

type Identifier struct {
	Name string
}

type UnaryOp string

const (
	UnaryPositive UnaryOp = "+"
	UnaryNegative UnaryOp = "-"
	UnaryNot      UnaryOp = "!"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryModulo         BinaryOp = "%"
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
	BinaryGreater        BinaryOp = ">"
	BinaryLess           BinaryOp = "<"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryLessEqual      BinaryOp = "<="
	BinaryAnd            BinaryOp = "&&"
	BinaryOr             BinaryOp = "||"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type Assign struct {
	Name  string
	Value Expr
}

type Block struct {
	Statements []Expr
}

type IfExpr struct {
	Condition Expr
	Then      *Block
	Else      *Block
}

// ReturnStmt with a nil Value returns nothing.
type ReturnStmt struct {
	Value Expr
}

// FuncDecl keeps its parameters as parsed factors; anything other than an
// *Identifier is rejected when the function is called.
type FuncDecl struct {
	Name   string
	Params []Expr
	Body   *Block
}

type FuncCall struct {
	Name string
	Args []Expr
}

// LambdaExpr is applied on evaluation only when Applied is set, in which
// case Args are bound to Params without being evaluated first.
type LambdaExpr struct {
	Params  []string
	Body    Expr
	Args    []Expr
	Applied bool
}

func (*LiteralExpr) exprNode() {}
func (*Identifier) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*Assign) exprNode()      {}
func (*Block) exprNode()       {}
func (*IfExpr) exprNode()      {}
func (*ReturnStmt) exprNode()  {}
func (*FuncDecl) exprNode()    {}
func (*FuncCall) exprNode()    {}
func (*LambdaExpr) exprNode()  {}
