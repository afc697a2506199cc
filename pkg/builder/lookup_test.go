package builder

import (
	"testing"

	"github.com/fennimore-labs/causalexpr/pkg/value"
)

func TestLookupSelectsKey(t *testing.T) {
	rates := map[string]Operand{
		"gold":   Bind("gold_rate", 0.2),
		"silver": Bind("silver_rate", 0.1),
	}
	got, err := Lookup(rates, "gold")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value().AsFloat() != 0.2 {
		t.Fatalf("value = %v, want 0.2", got.Value())
	}
}

func TestLookupMissingKeyFails(t *testing.T) {
	rates := map[string]Operand{"gold": Bind("gold_rate", 0.2)}
	_, err := Lookup(rates, "platinum")
	if !value.HasTag(err, value.TagKeyNotFound) {
		t.Fatalf("error = %v, want KeyNotFound", err)
	}
}

func TestUncertainLookupDefaultsOnMiss(t *testing.T) {
	rates := map[string]Operand{"gold": Bind("gold_rate", 0.2)}
	got, err := UncertainLookup(rates, "platinum", value.NewFloat(0.0))
	if err != nil {
		t.Fatal(err)
	}
	if got.Value().AsFloat() != 0.0 {
		t.Fatalf("value = %v, want default 0.0", got.Value())
	}
	if !got.Node().CaseLabels().Defaulted {
		t.Fatal("CaseLabels.Defaulted should be true when the key was absent")
	}
}

func TestUncertainLookupUsesPresentKey(t *testing.T) {
	rates := map[string]Operand{"gold": Bind("gold_rate", 0.2)}
	got, err := UncertainLookup(rates, "gold", value.NewFloat(0.0))
	if err != nil {
		t.Fatal(err)
	}
	if got.Node().CaseLabels().Defaulted {
		t.Fatal("CaseLabels.Defaulted should be false when the key was present")
	}
}
