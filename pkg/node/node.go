package node

import (
	"github.com/google/uuid"

	"github.com/fennimore-labs/causalexpr/pkg/value"
)

// CaseLabels carries the auxiliary metadata spec.md §3 requires on
// Lookup, UncertainLookup, and Conditional nodes: the keys considered,
// the one selected, and (for Conditional) which branch was taken.
type CaseLabels struct {
	// Keys lists the full set of keys available in the lookup map,
	// sorted.
	Keys []string
	// SelectedKey is the key actually used (Lookup/UncertainLookup).
	SelectedKey string
	// Defaulted reports whether an UncertainLookup fell back to its
	// default because SelectedKey was absent from the map.
	Defaulted bool
	// TakenBranch is the zero-based index of the cond/then pair whose
	// condition was true, or -1 if the else branch was taken
	// (Conditional only).
	TakenBranch int
}

// Node is an immutable expression-tree vertex. Its Value is computed
// once, at construction, by the pkg/builder constructor that produced
// it — Node itself never evaluates anything. All fields are unexported;
// construction is only possible through this package's New* functions,
// which pkg/builder calls after folding operand values under
// pkg/value's arithmetic/comparison rules.
type Node struct {
	id       uuid.UUID
	name     *string
	val      value.Value
	operator Operator
	operands []*Node
	labels   *CaseLabels
}

// ID returns the node's process-unique identifier.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the node's binding label and whether one is present.
func (n *Node) Name() (string, bool) {
	if n.name == nil {
		return "", false
	}
	return *n.name, true
}

// Value returns the node's precomputed value.
func (n *Node) Value() value.Value { return n.val }

// Operator returns the node's operator tag.
func (n *Node) Operator() Operator { return n.operator }

// Operands returns the node's ordered children. The returned slice must
// not be mutated by callers; Node treats it as immutable after
// construction.
func (n *Node) Operands() []*Node { return n.operands }

// CaseLabels returns the node's auxiliary Lookup/UncertainLookup/
// Conditional metadata, or nil if the node carries none.
func (n *Node) CaseLabels() *CaseLabels { return n.labels }

// Named returns a new node — a distinct vertex with its own identifier,
// matching original_source/src/expressions.py's with_name, which
// deepcopies before attaching a name — identical in every field except
// that name is set.
func (n *Node) Named(name string) *Node {
	cp := *n
	cp.id = uuid.New()
	cp.name = &name
	return &cp
}

// NewLeaf constructs a terminal operand: a named binding, a bare
// literal, or both. spec.md §3: "A Leaf has no operands and at least
// one of name or a literal value."
func NewLeaf(name *string, v value.Value) *Node {
	return &Node{id: uuid.New(), name: name, val: v, operator: Leaf}
}

// NewUnary constructs a single-operand node (Not).
func NewUnary(op Operator, operand *Node, v value.Value) *Node {
	return &Node{id: uuid.New(), val: v, operator: op, operands: []*Node{operand}}
}

// NewBinary constructs a two-operand node (Minus, DividedBy, and the
// six comparisons, which do not flatten per spec.md §4.2).
func NewBinary(op Operator, left, right *Node, v value.Value) *Node {
	return &Node{id: uuid.New(), val: v, operator: op, operands: []*Node{left, right}}
}

// NewNary constructs a flattened N-ary node (Plus, Times, And, Or).
// The caller (pkg/builder) is responsible for having already absorbed a
// same-operator left-hand operand's children per spec.md §4.2/§4.3.
func NewNary(op Operator, operands []*Node, v value.Value) *Node {
	return &Node{id: uuid.New(), val: v, operator: op, operands: operands}
}

// NewLookup constructs a Lookup or UncertainLookup node. operands is
// exactly [keyNode, valueNode] per spec.md §4.5.
func NewLookup(op Operator, keyNode, valueNode *Node, v value.Value, labels CaseLabels) *Node {
	return &Node{
		id:       uuid.New(),
		val:      v,
		operator: op,
		operands: []*Node{keyNode, valueNode},
		labels:   &labels,
	}
}

// NewConditional constructs a finalized Conditional node. operands is
// ordered cond₁, then₁, cond₂, then₂, …, else per spec.md §3.
func NewConditional(operands []*Node, v value.Value, takenBranch int) *Node {
	return &Node{
		id:       uuid.New(),
		val:      v,
		operator: Conditional,
		operands: operands,
		labels:   &CaseLabels{TakenBranch: takenBranch},
	}
}

// WithOperands returns a shallow copy of n with its operands replaced;
// n itself is left unchanged.
func (n *Node) WithOperands(operands []*Node) *Node {
	cp := *n
	cp.operands = operands
	return &cp
}

// WithOperator returns a shallow copy of n with its operator and value
// replaced; n itself is left unchanged.
func (n *Node) WithOperator(op Operator, v value.Value) *Node {
	cp := *n
	cp.operator = op
	cp.val = v
	return &cp
}

// WithOperandsAndLabels returns a shallow copy of n with both its
// operands and its CaseLabels replaced. Used by the Simplifier when
// trimming a Conditional's untaken branches: TakenBranch keeps the same
// meaning (the index of the true condition among whatever conditions
// remain) since trimming only drops branches after the taken one.
func (n *Node) WithOperandsAndLabels(operands []*Node, labels CaseLabels) *Node {
	cp := *n
	cp.operands = operands
	cp.labels = &labels
	return &cp
}
