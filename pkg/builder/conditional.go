package builder

import (
	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// condThen is one already-confirmed cond/then pair of a conditional
// under construction.
type condThen struct {
	cond *node.Node
	then *node.Node
}

// IncompleteConditional is the state after If or Elif, before its
// matching Then — mirrors original_source/src/expressions.py's
// IncompleteConditional, but as its own Go type rather than a flag on a
// shared mutable builder, so a call to Else or Elif before Then is a
// compile error rather than a runtime BuilderStateError (spec.md §9).
type IncompleteConditional struct {
	branches    []condThen
	pendingCond *node.Node
}

// If begins an If→Then→(Elif→Then)*→Else chain.
func If(cond Operand) (*IncompleteConditional, error) {
	condNode, err := normalize(cond)
	if err != nil {
		return nil, err
	}
	if condNode.Value().Type() != value.KindBool {
		return nil, value.NewTypeError("if condition must be Bool, got %s", condNode.Value().Type())
	}
	return &IncompleteConditional{pendingCond: condNode}, nil
}

// Then supplies the result for ic's pending condition, completing that
// branch and returning a PartialConditional awaiting Elif or Else.
func (ic *IncompleteConditional) Then(expr Operand) (*PartialConditional, error) {
	thenNode, err := normalize(expr)
	if err != nil {
		return nil, err
	}
	branches := make([]condThen, len(ic.branches), len(ic.branches)+1)
	copy(branches, ic.branches)
	branches = append(branches, condThen{cond: ic.pendingCond, then: thenNode})
	return &PartialConditional{branches: branches}, nil
}

// PartialConditional is a conditional with at least one confirmed
// cond/then branch, awaiting either another Elif branch or a final
// Else.
type PartialConditional struct {
	branches []condThen
}

// Elif adds another condition to the chain.
func (pc *PartialConditional) Elif(cond Operand) (*IncompleteConditional, error) {
	condNode, err := normalize(cond)
	if err != nil {
		return nil, err
	}
	if condNode.Value().Type() != value.KindBool {
		return nil, value.NewTypeError("elif condition must be Bool, got %s", condNode.Value().Type())
	}
	return &IncompleteConditional{branches: pc.branches, pendingCond: condNode}, nil
}

// Else finalizes the conditional with its fallback expression,
// producing the single Conditional node ordered cond₁, then₁, …, else
// (spec.md §3). The node's value is the then of the first branch whose
// condition is true, or the else value if none are.
func (pc *PartialConditional) Else(expr Operand) (*Expr, error) {
	elseNode, err := normalize(expr)
	if err != nil {
		return nil, err
	}
	operands := make([]*node.Node, 0, len(pc.branches)*2+1)
	taken := -1
	val := elseNode.Value()
	for i, b := range pc.branches {
		operands = append(operands, b.cond, b.then)
		if taken == -1 && b.cond.Value().AsBool() {
			taken = i
			val = b.then.Value()
		}
	}
	operands = append(operands, elseNode)
	return &Expr{node: node.NewConditional(operands, val, taken)}, nil
}
