// Package builder implements the fluent expression-tree construction
// surface of spec.md §4.2–§4.5, §6: Numeric, Int, Float, Bool, Not, If,
// Lookup, UncertainLookup, and the If→Then→(Elif→Then)*→Else
// conditional state machine. Every call here both builds a node.Node
// and evaluates it — construction and evaluation are the same step.
package builder

import (
	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// Operand is the argument every builder entry point accepts: either an
// already-built *node.Node, or a binding produced by Bind. Untyped so
// host call sites read naturally — Numeric(Bind("a", 0)) — the way
// spec.md §6 describes "name=value | node".
type Operand = interface{}

// binding is the Go stand-in for the spec's `name=value` keyword
// argument; Go has no keyword-argument syntax, so Bind is the
// equivalent of original_source/src/expressions.py's
// `**named_expressions` handling.
type binding struct {
	name string
	val  interface{}
}

// Bind produces a name=value operand literal. If v is itself a
// *node.Node, Bind attaches the name to a copy of it instead of
// wrapping it in a new leaf — the Go equivalent of
// original_source/src/expressions.py's Expression.with_name.
func Bind(name string, v interface{}) Operand {
	return binding{name: name, val: v}
}

// normalize turns an Operand into a *node.Node, per spec.md §4.2: "a
// named literal becomes a Leaf with the given name and value; an
// existing Node is reused." Malformed bindings (empty name, nil
// operand, or an unsupported Go type) fail with ArgumentError, matching
// spec.md §6: "passing both or neither fails with ArgumentError."
func normalize(op Operand) (*node.Node, error) {
	switch v := op.(type) {
	case *node.Node:
		return v, nil
	case binding:
		if v.name == "" {
			return nil, value.NewArgumentError("binding name must not be empty")
		}
		if n, ok := v.val.(*node.Node); ok {
			return n.Named(v.name), nil
		}
		val, err := toValue(v.val)
		if err != nil {
			return nil, err
		}
		name := v.name
		return node.NewLeaf(&name, val), nil
	case nil:
		return nil, value.NewArgumentError("operand must not be nil; pass a *node.Node or builder.Bind(name, value)")
	default:
		return nil, value.NewArgumentError("unsupported operand type %T", op)
	}
}

// toValue converts a raw Go literal (the value half of a Bind) into a
// value.Value.
func toValue(raw interface{}) (value.Value, error) {
	switch v := raw.(type) {
	case value.Value:
		return v, nil
	case bool:
		return value.NewBool(v), nil
	case int:
		return value.NewInt(int64(v)), nil
	case int64:
		return value.NewInt(v), nil
	case float64:
		return value.NewFloat(v), nil
	case string:
		return value.NewString(v), nil
	case nil:
		return value.Null, nil
	default:
		return value.Null, value.NewArgumentError("unsupported literal type %T", raw)
	}
}
