// Package value defines the tagged-union value model shared by every
// node in an expression tree: Int, Float, Bool, Str, and Null, with the
// promotion and equality rules arithmetic and comparison builders rely on.
package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// String returns the lowercase type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a small tagged union. Like the teacher's GCW Value, it is a
// plain struct rather than an interface, so constructing and copying
// values never allocates beyond what the variant itself needs.
type Value struct {
	kind    Kind
	boolVal bool
	intVal  int64
	fltVal  float64
	strVal  string
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// NewBool creates a boolean value.
func NewBool(v bool) Value { return Value{kind: KindBool, boolVal: v} }

// NewInt creates an integer value.
func NewInt(v int64) Value { return Value{kind: KindInt, intVal: v} }

// NewFloat creates a floating-point value.
func NewFloat(v float64) Value { return Value{kind: KindFloat, fltVal: v} }

// NewString creates a string value.
func NewString(v string) Value { return Value{kind: KindString, strVal: v} }

// Type returns the value's kind.
func (v Value) Type() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. Panics if v is not a Bool.
func (v Value) AsBool() bool {
	if v.kind != KindBool {
		panic(fmt.Sprintf("value: AsBool called on %s value", v.kind))
	}
	return v.boolVal
}

// AsInt returns the integer payload. Panics if v is not an Int.
func (v Value) AsInt() int64 {
	if v.kind != KindInt {
		panic(fmt.Sprintf("value: AsInt called on %s value", v.kind))
	}
	return v.intVal
}

// AsFloat returns the float payload. Panics if v is not a Float.
func (v Value) AsFloat() float64 {
	if v.kind != KindFloat {
		panic(fmt.Sprintf("value: AsFloat called on %s value", v.kind))
	}
	return v.fltVal
}

// AsString returns the string payload. Panics if v is not a Str.
func (v Value) AsString() string {
	if v.kind != KindString {
		panic(fmt.Sprintf("value: AsString called on %s value", v.kind))
	}
	return v.strVal
}

// AsNumber returns v as a float64 for Int or Float values, and reports
// whether v was numeric at all.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.fltVal, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Truthy reports the host-visible truthiness of a value. Used only by
// callers constructing raw conditions; the core itself never branches
// on truthiness outside the conditional state machine, where conditions
// are already required to be Bool.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.boolVal
	default:
		return true
	}
}

// Equal tests equality, promoting Int/Float operands to float64 first,
// per spec.md §3: "Equality across numeric variants compares
// numerically after promotion".
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if v.IsNumeric() && other.IsNumeric() {
			a, _ := v.AsNumber()
			b, _ := other.AsNumber()
			return a == b
		}
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.fltVal == other.fltVal
	case KindString:
		return v.strVal == other.strVal
	default:
		return false
	}
}

// String renders v the way the Renderer embeds leaf literals: booleans
// as True/False, null as Null, strings quoted, floats that happen to be
// whole printed with one decimal place so "4.0" is never mistaken for
// the int "4".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBool:
		if v.boolVal {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", v.intVal)
	case KindFloat:
		if v.fltVal == math.Trunc(v.fltVal) && !math.IsInf(v.fltVal, 0) {
			return fmt.Sprintf("%.1f", v.fltVal)
		}
		return fmt.Sprintf("%g", v.fltVal)
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	default:
		return "<unknown>"
	}
}

// MarshalJSON serializes v for the Flattener's Record.Value column.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindInt:
		return json.Marshal(v.intVal)
	case KindFloat:
		return json.Marshal(v.fltVal)
	case KindString:
		return json.Marshal(v.strVal)
	default:
		return nil, fmt.Errorf("value: cannot marshal unknown kind %d", v.kind)
	}
}

// UnmarshalJSON is the inverse of MarshalJSON. Since JSON alone cannot
// distinguish Int from Float, it is lossy: a JSON number with no
// fractional part becomes Int, matching how the Flattener re-encodes
// values it produced itself.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromJSON(raw)
	return nil
}

// FromJSON converts a decoded JSON value (as produced by
// encoding/json's default interface{} decoding) into a Value.
func FromJSON(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(x)
	case string:
		return NewString(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return NewInt(i)
		}
		f, _ := x.Float64()
		return NewFloat(f)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && x >= math.MinInt64 && x <= math.MaxInt64 {
			return NewInt(int64(x))
		}
		return NewFloat(x)
	default:
		return NewString(fmt.Sprintf("%v", x))
	}
}
