package builder

import (
	"sort"

	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// Lookup selects m[key], failing with KeyNotFound if key is absent.
// The resulting node's CaseLabels record every key considered (sorted,
// since Go map iteration order is not stable) and the one selected,
// per spec.md §4.5.
func Lookup(m map[string]Operand, key string) (*Expr, error) {
	raw, ok := m[key]
	if !ok {
		return nil, value.NewKeyNotFound(key)
	}
	valNode, err := normalize(raw)
	if err != nil {
		return nil, err
	}
	keyNode := node.NewLeaf(nil, value.NewString(key))
	labels := node.CaseLabels{Keys: sortedKeys(m), SelectedKey: key}
	return &Expr{node: node.NewLookup(node.Lookup, keyNode, valNode, valNode.Value(), labels)}, nil
}

// UncertainLookup selects m[key], falling back to def (rather than
// failing) when key is absent. labels.Defaulted records which happened.
func UncertainLookup(m map[string]Operand, key string, def value.Value) (*Expr, error) {
	keyNode := node.NewLeaf(nil, value.NewString(key))
	raw, ok := m[key]
	var valNode *node.Node
	defaulted := !ok
	if ok {
		var err error
		valNode, err = normalize(raw)
		if err != nil {
			return nil, err
		}
	} else {
		valNode = node.NewLeaf(nil, def)
	}
	labels := node.CaseLabels{Keys: sortedKeys(m), SelectedKey: key, Defaulted: defaulted}
	return &Expr{node: node.NewLookup(node.UncertainLookup, keyNode, valNode, valNode.Value(), labels)}, nil
}

func sortedKeys(m map[string]Operand) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
