package lambda

func (i *Interpreter) unaryExpression(e *UnaryExpr) (Value, error) {
	v, err := i.Eval(e.Operand)
	if err != nil {
		return None, err
	}

	if e.Operation == UnaryNot {
		return BoolValue(!v.Truthy()), nil
	}

	n, ok := v.asInt()
	if !ok {
		return None, evalErrorf(e, "operand of unary '%s' is %s", e.Operation, v)
	}

	switch e.Operation {
	case UnaryPositive:
		return IntValue(n), nil
	case UnaryNegative:
		return IntValue(-n), nil
	default:
		return None, &UnsupportedOperatorError{Op: string(e.Operation)}
	}
}

// binaryExpression evaluates both operands before combining them, logical
// operators included.
func (i *Interpreter) binaryExpression(e *BinaryExpr) (Value, error) {
	lhs, err := i.Eval(e.Op1)
	if err != nil {
		return None, err
	}

	rhs, err := i.Eval(e.Op2)
	if err != nil {
		return None, err
	}

	switch e.Operation {
	case BinaryAnd:
		if !lhs.Truthy() {
			return lhs, nil
		}
		return rhs, nil
	case BinaryOr:
		if lhs.Truthy() {
			return lhs, nil
		}
		return rhs, nil
	case BinaryEqual:
		return BoolValue(equal(lhs, rhs)), nil
	case BinaryNotEqual:
		return BoolValue(!equal(lhs, rhs)), nil
	}

	a, okA := lhs.asInt()
	b, okB := rhs.asInt()
	if !okA || !okB {
		return None, evalErrorf(e, "unsupported operands for '%s': %s and %s", e.Operation, lhs, rhs)
	}

	switch e.Operation {
	case BinaryAddition:
		return IntValue(a + b), nil
	case BinarySubtraction:
		return IntValue(a - b), nil
	case BinaryMultiplication:
		return IntValue(a * b), nil
	case BinaryDivision:
		if b == 0 {
			return None, &DivisionByZeroError{Op: e.Operation}
		}
		return IntValue(floorDiv(a, b)), nil
	case BinaryModulo:
		if b == 0 {
			return None, &DivisionByZeroError{Op: e.Operation}
		}
		return IntValue(floorMod(a, b)), nil
	case BinaryGreater:
		return BoolValue(a > b), nil
	case BinaryLess:
		return BoolValue(a < b), nil
	case BinaryGreaterEqual:
		return BoolValue(a >= b), nil
	case BinaryLessEqual:
		return BoolValue(a <= b), nil
	default:
		return None, &UnsupportedOperatorError{Op: string(e.Operation)}
	}
}

func equal(lhs, rhs Value) bool {
	a, okA := lhs.asInt()
	b, okB := rhs.asInt()
	if okA && okB {
		return a == b
	}

	return lhs.Kind == rhs.Kind
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

// floorMod takes the sign of the divisor.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}
