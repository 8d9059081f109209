package lambda

import (
	"io"
	"log/slog"
)

const DefaultMaxCallDepth = 10000

type Option func(*Interpreter)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxCallDepth bounds the number of simultaneously active frames. Zero
// disables the check.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

// Interpreter evaluates syntax trees against its own Environment. State
// survives between calls to Interpret, so one interpreter can serve a whole
// REPL session.
type Interpreter struct {
	env      *Environment
	logger   *slog.Logger
	maxDepth int
}

func NewInterpreter(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:      NewEnvironment(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxCallDepth,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *Interpreter) Environment() *Environment {
	return i.env
}

// Reset drops every global, function and frame.
func (i *Interpreter) Reset() {
	i.env = NewEnvironment()
}

// Interpret parses the parser's whole input and executes it.
func (i *Interpreter) Interpret(p *Parser) ([]Value, error) {
	program, err := p.Run()
	if err != nil {
		return nil, err
	}

	return i.Exec(program)
}

// Exec evaluates the top level statements of program in order and returns
// the non-empty results. On error the results gathered so far are returned
// along with it.
func (i *Interpreter) Exec(program *Block) ([]Value, error) {
	var results []Value
	for _, stmt := range program.Statements {
		v, err := i.Eval(stmt)
		if err != nil {
			return results, err
		}

		if !v.IsNone() {
			results = append(results, v)
		}
	}

	return results, nil
}

func (i *Interpreter) Eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *Identifier:
		return i.variable(e)
	case *Assign:
		return i.assign(e)
	case *UnaryExpr:
		return i.unaryExpression(e)
	case *BinaryExpr:
		return i.binaryExpression(e)
	case *Block:
		return i.block(e)
	case *IfExpr:
		return i.ifExpression(e)
	case *ReturnStmt:
		if e.Value == nil {
			return None, nil
		}
		return i.Eval(e.Value)
	case *FuncDecl:
		i.env.Functions[e.Name] = e
		i.logger.Debug("function declared", "name", e.Name, "params", len(e.Params))
		return None, nil
	case *FuncCall:
		return i.functionCall(e)
	case *LambdaExpr:
		return i.lambda(e)
	}

	return None, evalErrorf(expr, "no evaluation rule for %T", expr)
}

func (i *Interpreter) variable(e *Identifier) (Value, error) {
	val, frame, ok := i.env.Lookup(e.Name)
	if !ok {
		return None, &NameError{Name: e.Name}
	}

	if val.Kind != ValueDeferred {
		return val, nil
	}

	// The binding is hidden while it is resolved so that an argument naming
	// its own parameter reads the globals instead of itself.
	frame.Delete(e.Name)

	resolved, err := i.Eval(val.Expr)
	if err != nil {
		frame.Set(e.Name, val)
		return None, err
	}

	frame.Set(e.Name, resolved)

	return resolved, nil
}

func (i *Interpreter) assign(e *Assign) (Value, error) {
	val, err := i.Eval(e.Value)
	if err != nil {
		return None, err
	}

	i.env.Assign(e.Name, val)

	return None, nil
}

func (i *Interpreter) block(b *Block) (Value, error) {
	result := None
	for _, stmt := range b.Statements {
		v, err := i.Eval(stmt)
		if err != nil {
			return None, err
		}

		result = v

		if _, isReturn := stmt.(*ReturnStmt); isReturn {
			return result, nil
		}
	}

	return result, nil
}

func (i *Interpreter) ifExpression(e *IfExpr) (Value, error) {
	cond, err := i.Eval(e.Condition)
	if err != nil {
		return None, err
	}

	if cond.Truthy() {
		return i.block(e.Then)
	}

	if e.Else != nil {
		return i.block(e.Else)
	}

	return None, nil
}

func (i *Interpreter) functionCall(e *FuncCall) (Value, error) {
	decl, ok := i.env.Functions[e.Name]
	if !ok {
		return None, &UndefinedFunctionError{Name: e.Name}
	}

	// Arguments are evaluated in the caller's scope. Surplus arguments are
	// still evaluated; surplus parameters stay unbound.
	frame := NewFrame()
	for idx, arg := range e.Args {
		v, err := i.Eval(arg)
		if err != nil {
			return None, err
		}

		if idx >= len(decl.Params) {
			continue
		}

		param, ok := decl.Params[idx].(*Identifier)
		if !ok {
			return None, evalErrorf(decl, "parameter %d of '%s' is not a name", idx+1, decl.Name)
		}

		frame.Set(param.Name, v)
	}

	return i.withFrame(e.Name, frame, func() (Value, error) {
		return i.block(decl.Body)
	})
}

func (i *Interpreter) lambda(e *LambdaExpr) (Value, error) {
	if !e.Applied {
		return None, nil
	}

	frame := NewFrame()
	for idx, param := range e.Params {
		if idx < len(e.Args) {
			frame.Set(param, deferredValue(e.Args[idx]))
		}
	}

	return i.withFrame("lambda", frame, func() (Value, error) {
		if call, ok := e.Body.(*FuncCall); ok {
			if bound, ok := frame.Get(call.Name); ok {
				return i.applyBound(call, bound)
			}
		}

		return i.Eval(e.Body)
	})
}

// applyBound invokes the expression a lambda parameter is bound to, using
// the arguments of call. A bound lambda is applied to those arguments; any
// other expression is evaluated as is.
func (i *Interpreter) applyBound(call *FuncCall, bound Value) (Value, error) {
	if bound.Kind != ValueDeferred {
		return None, evalErrorf(call, "'%s' is not callable", call.Name)
	}

	lambda, ok := bound.Expr.(*LambdaExpr)
	if !ok {
		return i.Eval(bound.Expr)
	}

	applied := *lambda
	applied.Args = call.Args
	applied.Applied = true

	i.logger.Debug("lambda applied through parameter", "name", call.Name, "args", len(call.Args))

	return i.Eval(&applied)
}

// withFrame runs fn with f pushed on the call stack. The frame is popped on
// every path out of fn.
func (i *Interpreter) withFrame(name string, f *Frame, fn func() (Value, error)) (Value, error) {
	if i.maxDepth > 0 && i.env.Stack.Depth() >= i.maxDepth {
		return None, evalErrorf(nil, "maximum call depth %d exceeded calling '%s'", i.maxDepth, name)
	}

	i.env.Stack.Push(f)
	i.logger.Debug("push frame", "name", name, "depth", i.env.Stack.Depth())

	defer func() {
		i.env.Stack.Pop()
		i.logger.Debug("pop frame", "name", name, "depth", i.env.Stack.Depth())
	}()

	return fn()
}
