package builder

import (
	"testing"

	"github.com/fennimore-labs/causalexpr/pkg/node"
)

func TestAndFlattensLeftHandChain(t *testing.T) {
	a, _ := Bool(Bind("a", true))
	and, err := a.And(Bind("b", true))
	if err != nil {
		t.Fatal(err)
	}
	and, err = and.And(Bind("c", true))
	if err != nil {
		t.Fatal(err)
	}
	if len(and.Node().Operands()) != 3 {
		t.Fatalf("And should flatten to 3 operands, got %d", len(and.Node().Operands()))
	}
	if !and.Value().AsBool() {
		t.Fatal("all-true And should be true")
	}
}

func TestAndFalseWhenAnyOperandFalse(t *testing.T) {
	a, _ := Bool(Bind("a", true))
	and, err := a.And(Bind("b", false))
	if err != nil {
		t.Fatal(err)
	}
	if and.Value().AsBool() {
		t.Fatal("And with a false operand should be false")
	}
}

func TestNotNegates(t *testing.T) {
	a, _ := Bool(Bind("a", true))
	notA, err := Not(a.Node())
	if err != nil {
		t.Fatal(err)
	}
	if notA.Value().AsBool() {
		t.Fatal("Not(true) should be false")
	}
	if notA.Node().Operator() != node.Not {
		t.Fatalf("operator = %v, want Not", notA.Node().Operator())
	}
}

func TestIsNotNullTrueForNonNull(t *testing.T) {
	notNull, err := IsNotNull(Bind("x", 5))
	if err != nil {
		t.Fatal(err)
	}
	if !notNull.Value().AsBool() {
		t.Fatal("IsNotNull(5) should be true")
	}
	if notNull.Node().Operator() != node.Neq {
		t.Fatalf("IsNotNull should be expressed as Neq, got %v", notNull.Node().Operator())
	}
}

func TestIsNotNullFalseForNull(t *testing.T) {
	notNull, err := IsNotNull(Bind("x", nil))
	if err != nil {
		t.Fatal(err)
	}
	if notNull.Value().AsBool() {
		t.Fatal("IsNotNull(null) should be false")
	}
	if notNull.Node().Operator() != node.Eq {
		t.Fatalf("false IsNotNull should flip to Eq, got %v", notNull.Node().Operator())
	}
}

func TestOrRequiresAtLeastOneOperand(t *testing.T) {
	a, _ := Bool(Bind("a", true))
	if _, err := a.Or(); err == nil {
		t.Fatal("Or() with no additional operands should fail with ArgumentError")
	}
}
