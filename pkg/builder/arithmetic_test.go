package builder

import (
	"testing"

	"github.com/fennimore-labs/causalexpr/pkg/node"
	"github.com/fennimore-labs/causalexpr/pkg/value"
)

func TestPlusFlattensLeftHandChain(t *testing.T) {
	x, err := Int(Bind("x", 1))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := x.Plus(Bind("y", 2))
	if err != nil {
		t.Fatal(err)
	}
	sum, err = sum.Plus(Bind("z", 3))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Node().Operator() != node.Plus {
		t.Fatalf("operator = %v, want Plus", sum.Node().Operator())
	}
	if len(sum.Node().Operands()) != 3 {
		t.Fatalf("operands = %d, want 3 (flattened, not nested)", len(sum.Node().Operands()))
	}
	if sum.Value().AsInt() != 6 {
		t.Fatalf("value = %v, want 6", sum.Value())
	}
}

func TestMinusDoesNotFlatten(t *testing.T) {
	a, _ := Int(Bind("a", 10))
	b, err := a.Minus(Bind("b", 3))
	if err != nil {
		t.Fatal(err)
	}
	c, err := b.Minus(Bind("c", 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Node().Operands()) != 2 {
		t.Fatalf("Minus should stay binary, got %d operands", len(c.Node().Operands()))
	}
	if c.Value().AsInt() != 5 {
		t.Fatalf("value = %v, want 5", c.Value())
	}
}

func TestDivisionAlwaysYieldsFloat(t *testing.T) {
	a, _ := Int(Bind("a", 4))
	q, err := a.DividedBy(Bind("b", 2))
	if err != nil {
		t.Fatal(err)
	}
	if q.Value().Type() != value.KindFloat {
		t.Fatalf("division result type = %v, want Float", q.Value().Type())
	}
}

func TestGtFlipsToLteWhenFalse(t *testing.T) {
	a, _ := Numeric(Bind("a", 2))
	gt, err := a.Gt(Bind("b", 4))
	if err != nil {
		t.Fatal(err)
	}
	if gt.Value().AsBool() != false {
		t.Fatalf("2 > 4 should be false")
	}
	if gt.Node().Operator() != node.Lte {
		t.Fatalf("false Gt should be recorded as Lte, got %v", gt.Node().Operator())
	}
}

func TestGtKeepsOperatorWhenTrue(t *testing.T) {
	a, _ := Numeric(Bind("a", 10))
	gt, err := a.Gt(Bind("b", 4))
	if err != nil {
		t.Fatal(err)
	}
	if gt.Node().Operator() != node.Gt {
		t.Fatalf("true Gt should keep its own tag, got %v", gt.Node().Operator())
	}
}

func TestIntRejectsFloatOperand(t *testing.T) {
	_, err := Int(Bind("a", 1.5))
	if err == nil {
		t.Fatal("expected TypeError for non-integral Int() operand")
	}
}
