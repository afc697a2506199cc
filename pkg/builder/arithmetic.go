package builder

import (
	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// NumBuilder is the fluent handle returned by Numeric, Int, and Float,
// and by any arithmetic chain method on one. All arithmetic is folded
// eagerly at construction time (spec.md §4.2); there is no lazy or
// deferred evaluation.
type NumBuilder struct {
	Expr
}

// Numeric wraps operand, requiring it to already carry an Int or Float
// value. It is the entry point used when the caller does not care
// which of the two numeric kinds the value is.
func Numeric(operand Operand) (*NumBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	if !n.Value().IsNumeric() {
		return nil, value.NewTypeError("Numeric operand must be Int or Float, got %s", n.Value().Type())
	}
	return &NumBuilder{Expr{node: n}}, nil
}

// Int wraps operand, requiring it to carry an Int value.
func Int(operand Operand) (*NumBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	if n.Value().Type() != value.KindInt {
		return nil, value.NewTypeError("Int operand must be Int, got %s", n.Value().Type())
	}
	return &NumBuilder{Expr{node: n}}, nil
}

// Float wraps operand, requiring it to carry a Float value.
func Float(operand Operand) (*NumBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	if n.Value().Type() != value.KindFloat {
		return nil, value.NewTypeError("Float operand must be Float, got %s", n.Value().Type())
	}
	return &NumBuilder{Expr{node: n}}, nil
}

// Plus adds operand to n. If n's own node is itself already a Plus
// node, its operands are absorbed rather than nested — the flattening
// rule of spec.md §4.2.
func (n *NumBuilder) Plus(operand Operand) (*NumBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	operands := flattenLeft(n.node, node.Plus, rhs)
	val, err := foldArith(operands, value.Add)
	if err != nil {
		return nil, err
	}
	return &NumBuilder{Expr{node: node.NewNary(node.Plus, operands, val)}}, nil
}

// Times multiplies n by operand, flattening a Times left-hand operand
// the same way Plus does.
func (n *NumBuilder) Times(operand Operand) (*NumBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	operands := flattenLeft(n.node, node.Times, rhs)
	val, err := foldArith(operands, value.Mul)
	if err != nil {
		return nil, err
	}
	return &NumBuilder{Expr{node: node.NewNary(node.Times, operands, val)}}, nil
}

// Minus subtracts operand from n. Minus does not flatten (spec.md
// §4.2: subtraction is not commutative, so chained subtraction stays
// strictly binary and left-associative).
func (n *NumBuilder) Minus(operand Operand) (*NumBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	val, err := value.Sub(n.node.Value(), rhs.Value())
	if err != nil {
		return nil, err
	}
	return &NumBuilder{Expr{node: node.NewBinary(node.Minus, n.node, rhs, val)}}, nil
}

// DividedBy divides n by operand. Division always yields Float and
// never flattens.
func (n *NumBuilder) DividedBy(operand Operand) (*NumBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	val, err := value.Div(n.node.Value(), rhs.Value())
	if err != nil {
		return nil, err
	}
	return &NumBuilder{Expr{node: node.NewBinary(node.DividedBy, n.node, rhs, val)}}, nil
}

// Eq compares n and operand for equality. A false result is recorded
// under Neq instead, per the comparison-flipping rule of spec.md §4.2,
// so the rendered justification always reads as a true statement.
func (n *NumBuilder) Eq(operand Operand) (*BoolBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	result := n.node.Value().Equal(rhs.Value())
	op := node.Eq
	if !result {
		op = node.Neq
	}
	return &BoolBuilder{Expr{node: node.NewBinary(op, n.node, rhs, value.NewBool(result))}}, nil
}

// Neq compares n and operand for inequality, flipping to Eq when false.
func (n *NumBuilder) Neq(operand Operand) (*BoolBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	result := !n.node.Value().Equal(rhs.Value())
	op := node.Neq
	if !result {
		op = node.Eq
	}
	return &BoolBuilder{Expr{node: node.NewBinary(op, n.node, rhs, value.NewBool(result))}}, nil
}

// Gt reports whether n > operand, recorded under Lte when false.
func (n *NumBuilder) Gt(operand Operand) (*BoolBuilder, error) {
	return n.compare(node.Gt, operand, func(c int) bool { return c > 0 })
}

// Gte reports whether n >= operand, recorded under Lt when false.
func (n *NumBuilder) Gte(operand Operand) (*BoolBuilder, error) {
	return n.compare(node.Gte, operand, func(c int) bool { return c >= 0 })
}

// Lt reports whether n < operand, recorded under Gte when false.
func (n *NumBuilder) Lt(operand Operand) (*BoolBuilder, error) {
	return n.compare(node.Lt, operand, func(c int) bool { return c < 0 })
}

// Lte reports whether n <= operand, recorded under Gt when false.
func (n *NumBuilder) Lte(operand Operand) (*BoolBuilder, error) {
	return n.compare(node.Lte, operand, func(c int) bool { return c <= 0 })
}

func (n *NumBuilder) compare(op node.Operator, operand Operand, test func(int) bool) (*BoolBuilder, error) {
	rhs, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	cmp, err := value.Compare(n.node.Value(), rhs.Value())
	if err != nil {
		return nil, err
	}
	result := test(cmp)
	finalOp := op
	if !result {
		finalOp = op.Flip()
	}
	return &BoolBuilder{Expr{node: node.NewBinary(finalOp, n.node, rhs, value.NewBool(result))}}, nil
}

// flattenLeft builds the operand list for a Plus/Times/And/Or
// construction: if left is already of operator op, its operands are
// absorbed; otherwise left becomes the sole existing operand.
func flattenLeft(left *node.Node, op node.Operator, rest ...*node.Node) []*node.Node {
	var operands []*node.Node
	if left.Operator() == op {
		operands = append(operands, left.Operands()...)
	} else {
		operands = append(operands, left)
	}
	return append(operands, rest...)
}

// foldArith reduces operands left to right under op, starting from the
// first operand's own value.
func foldArith(operands []*node.Node, op func(a, b value.Value) (value.Value, error)) (value.Value, error) {
	acc := operands[0].Value()
	for _, o := range operands[1:] {
		v, err := op(acc, o.Value())
		if err != nil {
			return value.Null, err
		}
		acc = v
	}
	return acc, nil
}
