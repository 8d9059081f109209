package lambda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, i *Interpreter, src string) ([]Value, error) {
	t.Helper()

	return i.Interpret(NewParser(NewLexer(src)))
}

func TestInterpreter(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		expect []Value
	}{
		{"integer literal", "42", []Value{IntValue(42)}},
		{"boolean literal", "true", []Value{BoolValue(true)}},
		{"precedence", "1 + 2 * 3", []Value{IntValue(7)}},
		{"left associative", "10 - 3 - 2", []Value{IntValue(5)}},
		{"grouping", "(1 + 2) * 3", []Value{IntValue(9)}},
		{"floor division", "(-7) / 2", []Value{IntValue(-4)}},
		{"floor division positive", "7 / 2", []Value{IntValue(3)}},
		{"floor division negative divisor", "7 / (-2)", []Value{IntValue(-4)}},
		{"floor modulo", "(-7) % 3", []Value{IntValue(2)}},
		{"unary", "-(2 + 3)", []Value{IntValue(-5)}},
		{"unary plus", "+4", []Value{IntValue(4)}},
		{"not", "!false", []Value{BoolValue(true)}},
		{"not integer", "!0", []Value{BoolValue(true)}},
		{"comparison", "3 >= 3", []Value{BoolValue(true)}},
		{"inequality", "1 != 2", []Value{BoolValue(true)}},
		{"bool equals int", "true == 1", []Value{BoolValue(true)}},
		{"bool arithmetic", "true + true", []Value{IntValue(2)}},
		{"and", "true && false", []Value{BoolValue(false)}},
		{"or", "false || true", []Value{BoolValue(true)}},
		{"and yields right operand", "1 && 5", []Value{IntValue(5)}},
		{"or yields left operand", "3 || 5", []Value{IntValue(3)}},
		{"and yields falsy left", "0 && 5", []Value{IntValue(0)}},
		{"assignment yields nothing", "x = 5", nil},
		{"assignment then read", "x = 5\nx", []Value{IntValue(5)}},
		{"if then", "if (1 > 0) { return 1 } else { return 0 }", []Value{IntValue(1)}},
		{"if else", "if (0 > 1) { return 1 } else { return 0 }", []Value{IntValue(0)}},
		{"if without else", "if (0 > 1) { 1 }", nil},
		{"if integer condition", "if (2) { 7 }", []Value{IntValue(7)}},
		{"block value is last statement", "if (true) { 1\n2\n3 }", []Value{IntValue(3)}},
		{"return stops block", "if (true) { 1\nreturn 2\n3 }", []Value{IntValue(2)}},
		{"empty return", "if (true) { return }", nil},
		{"top level return", "return 9", []Value{IntValue(9)}},
		{"declaration yields nothing", "defun f() { return 1 }", nil},
		{
			"function call",
			"defun add(a, b) { return a + b }\nadd(2, 3)",
			[]Value{IntValue(5)},
		},
		{
			"redeclaration",
			"defun f() { return 1 }\ndefun f() { return 2 }\nf()",
			[]Value{IntValue(2)},
		},
		{
			"recursion",
			"defun fact(n) { if (n == 0) { return 1 } else { return n * fact(n - 1) } }\nfact(10)",
			[]Value{IntValue(3628800)},
		},
		{
			"return inside if does not leave the function",
			"defun f(x) {\n if (x > 0) { return 1 }\n return 0\n}\nf(5)",
			[]Value{IntValue(0)},
		},
		{
			"function without value",
			"defun f() { x = 1 }\nf()",
			nil,
		},
		{
			"global survives calls",
			"x = 5\ndefun f(a) { return a }\nf(1)\nx",
			[]Value{IntValue(1), IntValue(5)},
		},
		{
			"parameter assignment is local",
			"x = 5\ndefun f(x) { x = 100\nreturn x }\nf(1)\nx",
			[]Value{IntValue(100), IntValue(5)},
		},
		{
			"globals are readable in functions",
			"g = 7\ndefun f() { return g }\nf()",
			[]Value{IntValue(7)},
		},
		{
			"arguments evaluated in caller scope",
			"defun inner(a) { return a * 2 }\ndefun outer(a) { return inner(a + 1) }\nouter(3)",
			[]Value{IntValue(8)},
		},
		{
			"extra arguments are evaluated and dropped",
			"defun one(a) { return a }\none(1, 2)",
			[]Value{IntValue(1)},
		},
		{"bare lambda", "lambda x: x + 1", nil},
		{"applied lambda", "lambda x: x + 1 (5)", []Value{IntValue(6)}},
		{"applied lambda two params", "lambda (x, y): (x * y) (3, 4)", []Value{IntValue(12)}},
		{"applied lambda without params", "lambda (): 1 ()", []Value{IntValue(1)}},
		{
			"lambda argument evaluated in lambda frame",
			"g = 2\nlambda x: x * 10 (g + 1)",
			[]Value{IntValue(30)},
		},
		{
			"lambda parameter selects the function",
			"lambda f: f(3) (lambda y: y * 2)",
			[]Value{IntValue(6)},
		},
		{
			"lambda body calls a declared function",
			"defun sq(n) { return n * n }\nlambda x: sq(x) (4)",
			[]Value{IntValue(16)},
		},
		{
			"lambda assigned holds nothing",
			"f = lambda x: x\nf == f",
			[]Value{BoolValue(true)},
		},
		{
			"lambda argument naming its parameter reads globals",
			"x = 4\nlambda x: x + 1 (x)",
			[]Value{IntValue(5)},
		},
		{
			"lambda argument reads a sibling parameter",
			"b = 10\nlambda (a, b): a + b + 0 (b, 1)",
			[]Value{IntValue(2)},
		},
		{
			"comments",
			"# leading\nx = 1 # trailing\nx + 1 # more",
			[]Value{IntValue(2)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i := NewInterpreter()

			got, err := run(t, i, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.expect, got)
			assert.Equal(t, 0, i.Environment().Stack.Depth())
		})
	}
}

func TestInterpreterErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		expect interface{}
	}{
		{"undefined variable", "y", &NameError{}},
		{"missing argument", "defun add(a, b) { return a + b }\nadd(2)", &NameError{}},
		{"caller locals are invisible", "defun g() { return a }\ndefun f(a) { return g() }\nf(1)", &NameError{}},
		{"undefined function", "nope(1)", &UndefinedFunctionError{}},
		{"division by zero", "1 / 0", &DivisionByZeroError{}},
		{"modulo by zero", "1 % 0", &DivisionByZeroError{}},
		{"division by false", "4 / false", &DivisionByZeroError{}},
		{"non name parameter", "defun f(1) { return 1 }\nf(2)", &EvaluationError{}},
		{"operand without value", "defun f() { x = 1 }\n1 + f()", &EvaluationError{}},
		{"locals do not leak", "defun f() { y = 3 }\nf()\ny", &NameError{}},
		{"parse error", "if (true { }", &ParseError{}},
		{"lex error", "1 $ 2", &LexError{}},
		{"nul byte", "x = 1\x00 $ y", &LexError{}},
		{
			"forwarded lambda argument resolves in the inner frame",
			"lambda (f, y): f(y) (lambda x: x * 2, 5)",
			&NameError{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i := NewInterpreter()

			_, err := run(t, i, c.src)
			require.Error(t, err)
			assert.IsType(t, c.expect, err)
			assert.Equal(t, 0, i.Environment().Stack.Depth())
		})
	}
}

func TestInterpreterNameErrorMessage(t *testing.T) {
	_, err := run(t, NewInterpreter(), "defun add(a, b) { return a + b }\nadd(2)")

	var nameErr *NameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "b", nameErr.Name)
}

func TestInterpreterForwardedLambdaArgument(t *testing.T) {
	_, err := run(t, NewInterpreter(), "lambda (f, y): f(y) (lambda x: x * 2, 5)")

	var nameErr *NameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "y", nameErr.Name)
}

func TestInterpreterPartialResults(t *testing.T) {
	got, err := run(t, NewInterpreter(), "1\n2\n3 / 0\n4")

	assert.Equal(t, []Value{IntValue(1), IntValue(2)}, got)
	assert.IsType(t, &DivisionByZeroError{}, err)
}

func TestInterpreterStatePersists(t *testing.T) {
	i := NewInterpreter()

	_, err := run(t, i, "defun inc(n) { return n + 1 }\nx = 41")
	require.NoError(t, err)

	got, err := run(t, i, "inc(x)")
	require.NoError(t, err)
	assert.Equal(t, []Value{IntValue(42)}, got)

	i.Reset()

	_, err = run(t, i, "inc(x)")
	assert.IsType(t, &UndefinedFunctionError{}, err)
}

func TestInterpretersAreIndependent(t *testing.T) {
	a, b := NewInterpreter(), NewInterpreter()

	_, err := run(t, a, "x = 1")
	require.NoError(t, err)

	_, err = run(t, b, "x")
	assert.IsType(t, &NameError{}, err)
}

func TestInterpreterMaxCallDepth(t *testing.T) {
	i := NewInterpreter(WithMaxCallDepth(50))

	_, err := run(t, i, "defun loop(n) { return loop(n + 1) }\nloop(0)")

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, evalErr.Reason, "maximum call depth")
	assert.Equal(t, 0, i.Environment().Stack.Depth())
}

func TestInterpreterUnsupportedOperator(t *testing.T) {
	i := NewInterpreter()

	_, err := i.Eval(&BinaryExpr{Operation: "^", Op1: num(1), Op2: num(2)})
	assert.IsType(t, &UnsupportedOperatorError{}, err)

	_, err = i.Eval(&UnaryExpr{Operation: "~", Operand: num(1)})
	assert.IsType(t, &UnsupportedOperatorError{}, err)
}

func TestInterpreterNoRule(t *testing.T) {
	_, err := NewInterpreter().Eval(nil)
	assert.IsType(t, &EvaluationError{}, err)
}

func TestInterpreterLiterals(t *testing.T) {
	i := NewInterpreter()

	for _, n := range []int64{0, 1, -1, 42, 1 << 40, -(1 << 62)} {
		got, err := i.Eval(num(n))
		require.NoError(t, err)
		assert.Equal(t, IntValue(n), got)
	}
}

func TestInterpreterFloorDivision(t *testing.T) {
	i := NewInterpreter()

	for a := int64(-9); a <= 9; a++ {
		for b := int64(-4); b <= 4; b++ {
			if b == 0 {
				continue
			}

			got, err := i.Eval(&BinaryExpr{Operation: BinaryDivision, Op1: num(a), Op2: num(b)})
			require.NoError(t, err)

			assert.Equal(t, int64(math.Floor(float64(a)/float64(b))), got.Int, "%d / %d", a, b)

			mod, err := i.Eval(&BinaryExpr{Operation: BinaryModulo, Op1: num(a), Op2: num(b)})
			require.NoError(t, err)
			assert.Equal(t, a, got.Int*b+mod.Int, "%d %% %d", a, b)
		}
	}
}
