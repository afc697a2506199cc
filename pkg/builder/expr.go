package builder

import (
	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// Expr is the fluent handle shared by every typed builder. NumBuilder
// and BoolBuilder embed Expr so Named and the ternary If/Else shorthand
// are available from any chain, regardless of the value type it ends
// in.
type Expr struct {
	node *node.Node
}

// Node returns the underlying constructed, already-evaluated node.
func (e *Expr) Node() *node.Node { return e.node }

// Value returns the node's precomputed value.
func (e *Expr) Value() value.Value { return e.node.Value() }

// Named attaches a binding label to e's node, matching
// original_source/src/expressions.py's Expression.with_name.
func (e *Expr) Named(name string) *Expr {
	return &Expr{node: e.node.Named(name)}
}

// If begins the ternary shorthand `expr.if_(cond).else_(other)`
// (spec.md §4.4), where e is the result used when cond is true.
func (e *Expr) If(cond Operand) (*Ternary, error) {
	condNode, err := normalize(cond)
	if err != nil {
		return nil, err
	}
	if condNode.Value().Type() != value.KindBool {
		return nil, value.NewTypeError("if condition must be Bool, got %s", condNode.Value().Type())
	}
	return &Ternary{resultIfTrue: e.node, cond: condNode}, nil
}

// Ternary is the pending state of the two-branch `expr.if_(cond)`
// shorthand, waiting on Else to finalize.
type Ternary struct {
	resultIfTrue *node.Node
	cond         *node.Node
}

// Else finalizes the ternary into a three-operand Conditional node
// (cond, then, else), the two-branch specialization of the general
// conditional grammar (spec.md §4.4).
func (t *Ternary) Else(other Operand) (*Expr, error) {
	otherNode, err := normalize(other)
	if err != nil {
		return nil, err
	}
	taken := -1
	val := otherNode.Value()
	if t.cond.Value().AsBool() {
		taken = 0
		val = t.resultIfTrue.Value()
	}
	operands := []*node.Node{t.cond, t.resultIfTrue, otherNode}
	return &Expr{node: node.NewConditional(operands, val, taken)}, nil
}
