// Package flatten converts a node.Node tree to and from a flat sequence
// of Records and back, per spec.md §4.7. Grounded on
// original_source/src/schema.py's EvaluatedExpressionRecord columns
// (id, parent_id, name, value, operator) and on pkg/store/store.go's
// style of validating data on the way back in.
package flatten

import (
	"sort"

	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// Record is one row of a flattened expression tree: a node plus enough
// structural metadata (ParentID, ChildIndex) to reconstruct the tree,
// and enough auxiliary metadata (Keys/SelectedKey/Defaulted/TakenBranch)
// to reconstruct Lookup/UncertainLookup/Conditional nodes exactly.
type Record struct {
	ID         string
	ParentID   *string
	ChildIndex int
	Name       *string
	Value      value.Value
	Operator   string

	Keys        []string
	SelectedKey *string
	Defaulted   bool
	TakenBranch *int
}

// Flatten walks n and returns one Record per node, root first, in the
// order a depth-first walk visits them.
func Flatten(n *node.Node) []Record {
	var records []Record

	var walk func(n *node.Node, parentID *string, idx int)
	walk = func(n *node.Node, parentID *string, idx int) {
		id := n.ID().String()
		rec := Record{
			ID:         id,
			ParentID:   parentID,
			ChildIndex: idx,
			Value:      n.Value(),
			Operator:   n.Operator().String(),
		}
		if name, ok := n.Name(); ok {
			nameCopy := name
			rec.Name = &nameCopy
		}
		if labels := n.CaseLabels(); labels != nil {
			rec.Keys = labels.Keys
			rec.Defaulted = labels.Defaulted
			if labels.SelectedKey != "" {
				sk := labels.SelectedKey
				rec.SelectedKey = &sk
			}
			if n.Operator() == node.Conditional {
				tb := labels.TakenBranch
				rec.TakenBranch = &tb
			}
		}
		records = append(records, rec)
		for i, o := range n.Operands() {
			pid := id
			walk(o, &pid, i)
		}
	}
	walk(n, nil, 0)
	return records
}

// Reconstruct rebuilds a node.Node tree from records, validating
// structural integrity: exactly one root, no dangling parent
// references, no cycles, no unreachable records (spec.md §4.7).
func Reconstruct(records []Record) (*node.Node, error) {
	byID := make(map[string]Record, len(records))
	var rootID string
	rootCount := 0
	for _, r := range records {
		if _, dup := byID[r.ID]; dup {
			return nil, value.NewIntegrityError("duplicate record id %q", r.ID)
		}
		byID[r.ID] = r
		if r.ParentID == nil {
			rootCount++
			rootID = r.ID
		}
	}
	if len(records) == 0 {
		return nil, value.NewIntegrityError("no records to reconstruct")
	}
	if rootCount == 0 {
		return nil, value.NewIntegrityError("no root record found (every record has a parent)")
	}
	if rootCount > 1 {
		return nil, value.NewIntegrityError("multiple root records found (%d)", rootCount)
	}

	childrenOf := make(map[string][]Record)
	for _, r := range records {
		if r.ParentID == nil {
			continue
		}
		if _, ok := byID[*r.ParentID]; !ok {
			return nil, value.NewIntegrityError("record %q references missing parent %q", r.ID, *r.ParentID)
		}
		childrenOf[*r.ParentID] = append(childrenOf[*r.ParentID], r)
	}
	for pid := range childrenOf {
		kids := childrenOf[pid]
		sort.Slice(kids, func(i, j int) bool { return kids[i].ChildIndex < kids[j].ChildIndex })
		childrenOf[pid] = kids
	}

	visiting := make(map[string]bool)
	built := make(map[string]*node.Node)

	var build func(id string) (*node.Node, error)
	build = func(id string) (*node.Node, error) {
		if n, ok := built[id]; ok {
			return n, nil
		}
		if visiting[id] {
			return nil, value.NewIntegrityError("cycle detected at record %q", id)
		}
		visiting[id] = true
		operands := make([]*node.Node, 0, len(childrenOf[id]))
		for _, childRec := range childrenOf[id] {
			child, err := build(childRec.ID)
			if err != nil {
				return nil, err
			}
			operands = append(operands, child)
		}
		visiting[id] = false
		n, err := buildNode(byID[id], operands)
		if err != nil {
			return nil, err
		}
		built[id] = n
		return n, nil
	}

	root, err := build(rootID)
	if err != nil {
		return nil, err
	}
	if len(built) != len(records) {
		return nil, value.NewIntegrityError("%d record(s) unreachable from root", len(records)-len(built))
	}
	return root, nil
}

func buildNode(rec Record, operands []*node.Node) (*node.Node, error) {
	op, ok := node.OperatorFromTag(rec.Operator)
	if !ok {
		return nil, value.NewIntegrityError("record %q has unknown operator tag %q", rec.ID, rec.Operator)
	}

	if op == node.Leaf {
		return node.NewLeaf(rec.Name, rec.Value), nil
	}

	var n *node.Node
	switch op {
	case node.Not:
		if len(operands) != 1 {
			return nil, value.NewIntegrityError("record %q: not expects 1 operand, got %d", rec.ID, len(operands))
		}
		n = node.NewUnary(op, operands[0], rec.Value)

	case node.Minus, node.DividedBy, node.Eq, node.Neq, node.Gt, node.Gte, node.Lt, node.Lte:
		if len(operands) != 2 {
			return nil, value.NewIntegrityError("record %q: %s expects 2 operands, got %d", rec.ID, rec.Operator, len(operands))
		}
		n = node.NewBinary(op, operands[0], operands[1], rec.Value)

	case node.Plus, node.Times, node.And, node.Or:
		if len(operands) < 2 {
			return nil, value.NewIntegrityError("record %q: %s expects at least 2 operands, got %d", rec.ID, rec.Operator, len(operands))
		}
		n = node.NewNary(op, operands, rec.Value)

	case node.Lookup, node.UncertainLookup:
		if len(operands) != 2 {
			return nil, value.NewIntegrityError("record %q: %s expects 2 operands, got %d", rec.ID, rec.Operator, len(operands))
		}
		var selectedKey string
		if rec.SelectedKey != nil {
			selectedKey = *rec.SelectedKey
		}
		labels := node.CaseLabels{Keys: rec.Keys, SelectedKey: selectedKey, Defaulted: rec.Defaulted}
		n = node.NewLookup(op, operands[0], operands[1], rec.Value, labels)

	case node.Conditional:
		if len(operands) < 2 {
			return nil, value.NewIntegrityError("record %q: conditional expects at least 2 operands, got %d", rec.ID, len(operands))
		}
		taken := -1
		if rec.TakenBranch != nil {
			taken = *rec.TakenBranch
		}
		n = node.NewConditional(operands, rec.Value, taken)

	default:
		return nil, value.NewIntegrityError("record %q: unsupported operator %q", rec.ID, rec.Operator)
	}

	if rec.Name != nil {
		n = n.Named(*rec.Name)
	}
	return n, nil
}
