// Package simplify implements the causal pruning pass of spec.md §4.6:
// a pure, bottom-up rewrite that drops operands a node's value does not
// actually depend on, without changing that value. Grounded on
// original_source/src/expressions.py's per-class evaluated_expression
// properties (And/Or's dual rewrite, Not's erasure, Conditional's
// taken-branch collapse), reworked here as one recursive function over
// node.Node's operator tag rather than a method per Expression
// subclass.
package simplify

import "github.com/fennimore-labs/causalexpr/pkg/node"

// Simplify returns a new tree with the same Value as n but with every
// operand that did not causally contribute to that value removed.
// Simplify never mutates n; it only ever builds new nodes (spec.md §3).
func Simplify(n *node.Node) *node.Node {
	switch n.Operator() {
	case node.Leaf:
		return n

	case node.Not:
		// spec.md §4.6: Not is erased, not rendered transparently —
		// simplify(Not(x)) is simplify(x) itself, carrying x's own
		// value and tag. No Not node ever survives simplification
		// (testable property 7).
		return Simplify(n.Operands()[0])

	case node.Minus, node.DividedBy,
		node.Eq, node.Neq, node.Gt, node.Gte, node.Lt, node.Lte:
		ops := n.Operands()
		left := Simplify(ops[0])
		right := Simplify(ops[1])
		return node.NewBinary(n.Operator(), left, right, n.Value())

	case node.Plus, node.Times:
		return node.NewNary(n.Operator(), simplifyAll(n.Operands()), n.Value())

	case node.And:
		return simplifyAnd(n)

	case node.Or:
		return simplifyOr(n)

	case node.Conditional:
		return simplifyConditional(n)

	case node.Lookup, node.UncertainLookup:
		ops := n.Operands()
		keyNode, valueNode := ops[0], Simplify(ops[1])
		return node.NewLookup(n.Operator(), keyNode, valueNode, n.Value(), *n.CaseLabels())

	default:
		return n
	}
}

func simplifyAll(operands []*node.Node) []*node.Node {
	out := make([]*node.Node, len(operands))
	for i, o := range operands {
		out[i] = Simplify(o)
	}
	return out
}

// simplifyAnd applies spec.md §4.6's causal rule: a True And requires
// every conjunct, so all survive under And. A False And is caused by
// its false conjunct(s) alone — the true ones contributed nothing — so
// only those survive, rewrapped under the dual Or (spec.md §8 property
// 6); if exactly one survives, the Or wrapper itself is dropped too.
// Causality is decided against each operand's own pre-simplification
// value, since Simplify may erase a Not wrapper and reveal a
// differently-valued node underneath.
func simplifyAnd(n *node.Node) *node.Node {
	operands := n.Operands()
	if n.Value().AsBool() {
		return node.NewNary(node.And, simplifyAll(operands), n.Value())
	}
	var causes []*node.Node
	for _, o := range operands {
		if !o.Value().AsBool() {
			causes = append(causes, Simplify(o))
		}
	}
	if len(causes) == 1 {
		return causes[0]
	}
	return node.NewNary(node.Or, causes, n.Value())
}

// simplifyOr applies the dual rule: a True Or is caused by its true
// disjunct(s) alone, which survive under Or itself (no dual flip — an
// Or already reads naturally as "this one holds or this one holds"); a
// False Or requires every disjunct to have failed, so all survive,
// rewrapped under the dual And (spec.md §8's Or/False → And example).
func simplifyOr(n *node.Node) *node.Node {
	operands := n.Operands()
	if !n.Value().AsBool() {
		return node.NewNary(node.And, simplifyAll(operands), n.Value())
	}
	var causes []*node.Node
	for _, o := range operands {
		if o.Value().AsBool() {
			causes = append(causes, Simplify(o))
		}
	}
	if len(causes) == 1 {
		return causes[0]
	}
	return node.NewNary(node.Or, causes, n.Value())
}

// simplifyConditional keeps only the taken branch and the conditions
// that had to be ruled out to reach it (spec.md §4.6): every condition
// up to and including the taken one (all false except the last, which
// is true), plus the taken branch's result — or, if no branch was
// taken, every condition (all false) plus the else result.
func simplifyConditional(n *node.Node) *node.Node {
	operands := n.Operands()
	labels := n.CaseLabels()
	taken := labels.TakenBranch
	elseNode := operands[len(operands)-1]

	var out []*node.Node
	if taken >= 0 {
		for i := 0; i <= taken; i++ {
			out = append(out, Simplify(operands[2*i]))
		}
		out = append(out, Simplify(operands[2*taken+1]))
	} else {
		branchCount := (len(operands) - 1) / 2
		for i := 0; i < branchCount; i++ {
			out = append(out, Simplify(operands[2*i]))
		}
		out = append(out, Simplify(elseNode))
	}

	newLabels := *labels
	return n.WithOperandsAndLabels(out, newLabels)
}
