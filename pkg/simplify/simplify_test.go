package simplify

import (
	"testing"

	"github.com/fennimore-labs/causalexpr/pkg/builder"
	"github.com/fennimore-labs/causalexpr/pkg/node"
)

func TestSimplifyPreservesValue(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	and, _ := a.And(builder.Bind("b", false), builder.Bind("c", true))

	simplified := Simplify(and.Node())
	if !simplified.Value().Equal(and.Node().Value()) {
		t.Fatalf("Simplify changed value: %v -> %v", and.Node().Value(), simplified.Value())
	}
}

func TestAndFalseKeepsOnlyOneFalseWitness(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	and, _ := a.And(builder.Bind("b", false), builder.Bind("c", true))

	simplified := Simplify(and.Node())
	if simplified.Value().AsBool() {
		t.Fatal("expected false")
	}
	if len(simplified.Operands()) != 0 {
		t.Fatalf("expected a bare false leaf witness, got %d operands", len(simplified.Operands()))
	}
	name, _ := simplified.Name()
	if name != "b" {
		t.Fatalf("witness = %q, want the false operand %q", name, "b")
	}
}

func TestAndFalseRewrapsMultipleCausesInOr(t *testing.T) {
	x, _ := builder.Bool(builder.Bind("x", true))
	and, _ := x.And(builder.Bind("y", false), builder.Bind("z", false))

	simplified := Simplify(and.Node())
	if simplified.Value().AsBool() {
		t.Fatal("expected false")
	}
	if simplified.Operator() != node.Or {
		t.Fatalf("expected dual Or wrapper, got %s", simplified.Operator())
	}
	if len(simplified.Operands()) != 2 {
		t.Fatalf("expected both false causes kept, got %d operands", len(simplified.Operands()))
	}
	for _, want := range []string{"y", "z"} {
		found := false
		for _, o := range simplified.Operands() {
			if name, _ := o.Name(); name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected cause %q to survive", want)
		}
	}
}

func TestAndTrueKeepsAllOperands(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	and, _ := a.And(builder.Bind("b", true), builder.Bind("c", true))

	simplified := Simplify(and.Node())
	if len(simplified.Operands()) != 3 {
		t.Fatalf("true And should keep all operands, got %d", len(simplified.Operands()))
	}
}

func TestOrTrueKeepsOnlyOneTrueWitness(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", false))
	or, _ := a.Or(builder.Bind("b", true), builder.Bind("c", false))

	simplified := Simplify(or.Node())
	if !simplified.Value().AsBool() {
		t.Fatal("expected true")
	}
	name, _ := simplified.Name()
	if name != "b" {
		t.Fatalf("witness = %q, want the true operand %q", name, "b")
	}
}

func TestOrFalseKeepsAllOperands(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", false))
	or, _ := a.Or(builder.Bind("b", false), builder.Bind("c", false))

	simplified := Simplify(or.Node())
	if simplified.Operator() != node.And {
		t.Fatalf("expected dual And wrapper, got %s", simplified.Operator())
	}
	if len(simplified.Operands()) != 3 {
		t.Fatalf("false Or should keep all operands, got %d", len(simplified.Operands()))
	}
}

func TestNotIsErased(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	notA, _ := builder.Not(a.Node())

	simplified := Simplify(notA.Node())
	if simplified.Operator() == node.Not {
		t.Fatal("expected Not to be erased")
	}
	// the Not wrapper's inverted value (false) belongs to the header the
	// caller prints, not to the simplified subtree, which still carries
	// its own operand's original value.
	if !simplified.Value().AsBool() {
		t.Fatalf("expected erased subtree to carry the operand's own value, got %v", simplified.Value())
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	and, _ := a.And(builder.Bind("b", false))

	once := Simplify(and.Node())
	twice := Simplify(once)
	if !once.Value().Equal(twice.Value()) {
		t.Fatalf("Simplify not idempotent on value: %v vs %v", once.Value(), twice.Value())
	}
}

func TestConditionalCollapsesToTakenBranch(t *testing.T) {
	cond1, _ := builder.If(builder.Bind("weekend", false))
	partial1, _ := cond1.Then(builder.Bind("rate", 1))
	cond2, _ := partial1.Elif(builder.Bind("holiday", true))
	partial2, _ := cond2.Then(builder.Bind("rate", 2))
	final, _ := partial2.Else(builder.Bind("rate", 3))

	simplified := Simplify(final.Node())
	// weekend(false), holiday(true), rate=2 -> 3 operands kept
	if len(simplified.Operands()) != 3 {
		t.Fatalf("expected 3 operands (weekend, holiday, rate=2), got %d", len(simplified.Operands()))
	}
	if simplified.Value().AsInt() != 2 {
		t.Fatalf("value = %v, want 2", simplified.Value())
	}
}
