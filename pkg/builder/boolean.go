package builder

import (
	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// BoolBuilder is the fluent handle returned by Bool, Not, IsNotNull,
// and any comparison, and supports chaining further And/Or operands.
type BoolBuilder struct {
	Expr
}

// Bool wraps operand, requiring it to already carry a Bool value.
func Bool(operand Operand) (*BoolBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	if n.Value().Type() != value.KindBool {
		return nil, value.NewTypeError("Bool operand must be Bool, got %s", n.Value().Type())
	}
	return &BoolBuilder{Expr{node: n}}, nil
}

// Not negates operand. Unlike the other builders, Not's node is never
// seen by the Renderer directly — the Simplifier always erases it
// (spec.md §4.6) — but it still participates in causal pruning before
// that happens.
func Not(operand Operand) (*BoolBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	if n.Value().Type() != value.KindBool {
		return nil, value.NewTypeError("Not operand must be Bool, got %s", n.Value().Type())
	}
	result := !n.Value().AsBool()
	return &BoolBuilder{Expr{node: node.NewUnary(node.Not, n, value.NewBool(result))}}, nil
}

// IsNotNull reports whether operand's value is non-Null. spec.md §9
// leaves this builder undefined in the tag vocabulary; it is expressed
// here as a Neq comparison against a Null leaf so it needs no new
// operator tag and still benefits from comparison flipping.
func IsNotNull(operand Operand) (*BoolBuilder, error) {
	n, err := normalize(operand)
	if err != nil {
		return nil, err
	}
	nullNode := node.NewLeaf(nil, value.Null)
	result := !n.Value().Equal(value.Null)
	op := node.Neq
	if !result {
		op = node.Eq
	}
	return &BoolBuilder{Expr{node: node.NewBinary(op, n, nullNode, value.NewBool(result))}}, nil
}

// And combines b with one or more further conditions. A left-hand And
// operand is flattened per spec.md §4.3; passing multiple conds is
// sugar for And-ing them all together.
func (b *BoolBuilder) And(conds ...Operand) (*BoolBuilder, error) {
	return b.combine(node.And, conds)
}

// Or combines b with one or more further conditions, flattening a
// left-hand Or operand the same way And does.
func (b *BoolBuilder) Or(conds ...Operand) (*BoolBuilder, error) {
	return b.combine(node.Or, conds)
}

func (b *BoolBuilder) combine(op node.Operator, conds []Operand) (*BoolBuilder, error) {
	if len(conds) == 0 {
		return nil, value.NewArgumentError("%s requires at least one additional operand", op)
	}
	rest := make([]*node.Node, 0, len(conds))
	for _, c := range conds {
		n, err := normalize(c)
		if err != nil {
			return nil, err
		}
		if n.Value().Type() != value.KindBool {
			return nil, value.NewTypeError("%s operand must be Bool, got %s", op, n.Value().Type())
		}
		rest = append(rest, n)
	}
	operands := flattenLeft(b.node, op, rest...)
	var result bool
	if op == node.And {
		result = allTrue(operands)
	} else {
		result = anyTrue(operands)
	}
	return &BoolBuilder{Expr{node: node.NewNary(op, operands, value.NewBool(result))}}, nil
}

func allTrue(operands []*node.Node) bool {
	for _, o := range operands {
		if !o.Value().AsBool() {
			return false
		}
	}
	return true
}

func anyTrue(operands []*node.Node) bool {
	for _, o := range operands {
		if o.Value().AsBool() {
			return true
		}
	}
	return false
}
