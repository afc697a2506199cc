// Package render turns a simplified node.Node into the canonical
// "<value> because <expression>" justification string of spec.md §5.
// Grounded on original_source/src/expressions.py's __str__/reason
// properties and on pkg/expr/token.go's convention of a fixed
// operator→symbol table.
package render

import (
	"fmt"
	"strings"

	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/simplify"
)

// Render simplifies n and returns its canonical justification string.
// The header always shows n's own value, not the simplified tree's —
// Simplify erases Not nodes rather than inverting the value it exposes
// at that position (spec.md §4.6, §8 "Not erased"), so for a Not-rooted
// tree the simplified node's own Value() no longer matches n's.
func Render(n *node.Node) string {
	s := simplify.Simplify(n)
	return fmt.Sprintf("%s because %s", n.Value().String(), renderExpr(s))
}

// renderExpr renders n's structural fragment only — never its own
// "<value> because" header, which only ever appears once, at the root.
func renderExpr(n *node.Node) string {
	switch n.Operator() {
	case node.Leaf:
		return renderLeaf(n)

	case node.Plus:
		return renderNary(n, " + ")
	case node.Times:
		return renderNary(n, " × ")

	case node.Minus:
		ops := n.Operands()
		return fmt.Sprintf("%s − %s", wrap(ops[0]), wrap(ops[1]))
	case node.DividedBy:
		ops := n.Operands()
		return fmt.Sprintf("%s / %s", wrap(ops[0]), wrap(ops[1]))

	case node.Eq, node.Neq, node.Gt, node.Gte, node.Lt, node.Lte:
		ops := n.Operands()
		return fmt.Sprintf("%s %s %s", wrap(ops[0]), comparisonSymbol(n.Operator()), wrap(ops[1]))

	case node.And:
		return renderLogical(n, " and ")
	case node.Or:
		return renderLogical(n, " or ")

	case node.Conditional:
		return renderConditional(n)

	case node.Lookup, node.UncertainLookup:
		return renderLookup(n)

	default:
		return n.Value().String()
	}
}

func renderLeaf(n *node.Node) string {
	name, named := n.Name()
	if named {
		return fmt.Sprintf("%s := %s", name, n.Value().String())
	}
	return n.Value().String()
}

func renderNary(n *node.Node, sep string) string {
	parts := make([]string, len(n.Operands()))
	for i, o := range n.Operands() {
		parts[i] = wrap(o)
	}
	return strings.Join(parts, sep)
}

func renderLogical(n *node.Node, sep string) string {
	parts := make([]string, len(n.Operands()))
	for i, o := range n.Operands() {
		parts[i] = wrap(o)
	}
	return strings.Join(parts, sep)
}

// renderConditional follows spec.md §4.7's post-simplification grammar:
// a taken branch reads "<then> when <cond1> and … and <condk>"; the
// else branch (no cond survived true) reads "<else> when not (<cond1>)
// and …", negating every retained condition.
func renderConditional(n *node.Node) string {
	operands := n.Operands()
	labels := n.CaseLabels()
	result := operands[len(operands)-1]
	conds := operands[:len(operands)-1]

	parts := make([]string, len(conds))
	for i, c := range conds {
		if labels.TakenBranch >= 0 {
			parts[i] = wrap(c)
		} else {
			parts[i] = "not " + wrap(c)
		}
	}
	return fmt.Sprintf("%s when %s", wrap(result), strings.Join(parts, " and "))
}

func renderLookup(n *node.Node) string {
	ops := n.Operands()
	keyNode, valueNode := ops[0], ops[1]
	labels := n.CaseLabels()
	if labels != nil && labels.Defaulted {
		return fmt.Sprintf("lookup(%s) defaulted to %s", renderExpr(keyNode), renderExpr(valueNode))
	}
	return fmt.Sprintf("lookup(%s) = %s", renderExpr(keyNode), renderExpr(valueNode))
}

// wrap parenthesizes child's rendering unless it is a bare, unnamed
// literal leaf — spec.md's worked examples show named leaves
// parenthesized ("(a := 2) ≤ (b := 4)") but bare literals left alone.
func wrap(child *node.Node) string {
	body := renderExpr(child)
	_, named := child.Name()
	if child.Operator() == node.Leaf && !named {
		return body
	}
	return "(" + body + ")"
}

func comparisonSymbol(op node.Operator) string {
	switch op {
	case node.Eq:
		return "="
	case node.Neq:
		return "≠"
	case node.Gt:
		return ">"
	case node.Gte:
		return "≥"
	case node.Lt:
		return "<"
	case node.Lte:
		return "≤"
	default:
		return "?"
	}
}
