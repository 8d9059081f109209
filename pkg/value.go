package lambda

import "strconv"

type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueBool
	// ValueDeferred holds an unevaluated expression bound by a lambda
	// application. It is resolved when the name it is bound to is read.
	ValueDeferred
)

// Value is the result of evaluating an expression. The zero Value is the
// empty result produced by declarations, assignments and untaken branches.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Expr Expr
}

var None = Value{}

func IntValue(v int64) Value {
	return Value{Kind: ValueInt, Int: v}
}

func BoolValue(v bool) Value {
	return Value{Kind: ValueBool, Bool: v}
}

func deferredValue(e Expr) Value {
	return Value{Kind: ValueDeferred, Expr: e}
}

func (v Value) IsNone() bool {
	return v.Kind == ValueNone
}

func (v Value) Truthy() bool {
	switch v.Kind {
	case ValueInt:
		return v.Int != 0
	case ValueBool:
		return v.Bool
	}

	return false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueDeferred:
		return "<deferred>"
	}

	return "none"
}

// asInt reads booleans as 0 and 1.
func (v Value) asInt() (int64, bool) {
	switch v.Kind {
	case ValueInt:
		return v.Int, true
	case ValueBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}
