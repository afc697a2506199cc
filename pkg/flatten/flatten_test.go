package flatten

import (
	"testing"

	"github.com/fennimore-labs/causalexpr/pkg/builder"
	"github.com/fennimore-labs/causalexpr/pkg/render"
)

func TestFlattenReconstructRoundTrip(t *testing.T) {
	a, _ := builder.Numeric(builder.Bind("a", 2))
	lte, err := a.Lte(builder.Bind("b", 4))
	if err != nil {
		t.Fatal(err)
	}

	records := Flatten(lte.Node())
	if len(records) != 3 {
		t.Fatalf("expected 3 records (root + 2 leaves), got %d", len(records))
	}
	if records[0].ParentID != nil {
		t.Fatal("root record must have a nil ParentID")
	}

	rebuilt, err := Reconstruct(records)
	if err != nil {
		t.Fatal(err)
	}
	if render.Render(rebuilt) != render.Render(lte.Node()) {
		t.Fatalf("round trip changed rendering: %q vs %q", render.Render(rebuilt), render.Render(lte.Node()))
	}
}

func TestFlattenReconstructRoundTripConditional(t *testing.T) {
	cond, _ := builder.If(builder.Bind("weekend", false))
	partial, _ := cond.Then(builder.Bind("rate", 1))
	final, err := partial.Else(builder.Bind("rate", 3))
	if err != nil {
		t.Fatal(err)
	}

	records := Flatten(final.Node())
	rebuilt, err := Reconstruct(records)
	if err != nil {
		t.Fatal(err)
	}
	if render.Render(rebuilt) != render.Render(final.Node()) {
		t.Fatalf("round trip changed rendering: %q vs %q", render.Render(rebuilt), render.Render(final.Node()))
	}
}

func TestReconstructRejectsDuplicateID(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	records := Flatten(a.Node())
	records = append(records, records[0])

	if _, err := Reconstruct(records); err == nil {
		t.Fatal("expected IntegrityError for duplicate id")
	}
}

func TestReconstructRejectsNoRoot(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	and, err := a.And(builder.Bind("b", true))
	if err != nil {
		t.Fatal(err)
	}
	records := Flatten(and.Node())
	parent := records[0].ID
	records[0].ParentID = &parent // root now claims itself as a parent

	if _, err := Reconstruct(records); err == nil {
		t.Fatal("expected IntegrityError when no record has a nil ParentID")
	}
}

func TestReconstructRejectsDanglingParent(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	records := Flatten(a.Node())
	ghost := "does-not-exist"
	records[0].ParentID = &ghost

	if _, err := Reconstruct(records); err == nil {
		t.Fatal("expected IntegrityError for a dangling parent reference")
	}
}

func TestReconstructRejectsUnreachableRecord(t *testing.T) {
	a, _ := builder.Bool(builder.Bind("a", true))
	b, err := builder.Bool(builder.Bind("b", false))
	if err != nil {
		t.Fatal(err)
	}
	records := append(Flatten(a.Node()), Flatten(b.Node())...)

	if _, err := Reconstruct(records); err == nil {
		t.Fatal("expected IntegrityError for multiple roots / unreachable records")
	}
}
