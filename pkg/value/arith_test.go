package value

import "testing"

func TestAddIntStaysInt(t *testing.T) {
	got, err := Add(NewInt(2), NewInt(3))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type() != KindInt || got.AsInt() != 5 {
		t.Errorf("Add(2, 3) = %v, want Int(5)", got)
	}
}

func TestAddIntFloatPromotesToFloat(t *testing.T) {
	got, err := Add(NewInt(2), NewFloat(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type() != KindFloat || got.AsFloat() != 2.5 {
		t.Errorf("Add(2, 0.5) = %v, want Float(2.5)", got)
	}
}

func TestDivAlwaysPromotesToFloat(t *testing.T) {
	got, err := Div(NewInt(4), NewInt(2))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type() != KindFloat || got.AsFloat() != 2.0 {
		t.Errorf("Div(4, 2) = %v, want Float(2.0)", got)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := Div(NewInt(1), NewInt(0))
	if !HasTag(err, TagDivisionByZero) {
		t.Fatalf("Div(1, 0) error = %v, want DivisionByZero", err)
	}
}

func TestCompareNonNumericIsTypeError(t *testing.T) {
	_, err := Compare(NewString("a"), NewInt(1))
	if !HasTag(err, TagTypeError) {
		t.Fatalf("Compare(string, int) error = %v, want TypeError", err)
	}
}

func TestCompareOrdering(t *testing.T) {
	tests := []struct {
		a, b Value
		want int
	}{
		{NewInt(1), NewInt(2), -1},
		{NewInt(2), NewInt(2), 0},
		{NewFloat(3), NewInt(2), 1},
	}
	for _, tt := range tests {
		got, err := Compare(tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
