package value

// Arithmetic and comparison on Value, grounded on pkg/expr/eval.go's
// evalArith/evalDivide/compare helpers: Int⊕Int folds to Int, any Float
// operand promotes the result to Float, and division always promotes
// both operands to Float first (spec.md §3, §4.1).

// Add computes a + b. String concatenation is not part of this value
// model (spec.md §3 enumerates only numeric arithmetic), so Add is
// purely numeric.
func Add(a, b Value) (Value, error) {
	return arith(a, b, "+",
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub computes a - b.
func Sub(a, b Value) (Value, error) {
	return arith(a, b, "-",
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul computes a * b.
func Mul(a, b Value) (Value, error) {
	return arith(a, b, "*",
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div computes a / b. Division always yields Float, per spec.md §3:
// "division always yields Float (operands are promoted to Float
// first)".
func Div(a, b Value) (Value, error) {
	x, aok := a.AsNumber()
	y, bok := b.AsNumber()
	if !aok || !bok {
		return Null, NewTypeError("unsupported operand types for /: %s and %s", a.Type(), b.Type())
	}
	if y == 0 {
		return Null, NewDivisionByZero()
	}
	return NewFloat(x / y), nil
}

func arith(a, b Value, op string, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (Value, error) {
	if a.Type() == KindInt && b.Type() == KindInt {
		return NewInt(intOp(a.AsInt(), b.AsInt())), nil
	}
	x, aok := a.AsNumber()
	y, bok := b.AsNumber()
	if !aok || !bok {
		return Null, NewTypeError("unsupported operand types for %s: %s and %s", op, a.Type(), b.Type())
	}
	return NewFloat(floatOp(x, y)), nil
}

// Compare returns -1, 0, or 1 for ordering between two numeric values.
// Comparison is only defined between numerics in this value model;
// spec.md §4.1 scopes comparisons to the six ordering/equality
// operators over numeric (and, via Eq/Neq, any-typed) operands.
func Compare(a, b Value) (int, error) {
	x, aok := a.AsNumber()
	y, bok := b.AsNumber()
	if !aok || !bok {
		return 0, NewTypeError("cannot compare %s and %s", a.Type(), b.Type())
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	default:
		return 0, nil
	}
}
