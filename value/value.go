// Package value implements the scalar value model: a closed tagged union
// over {Integer, Number, String, Boolean}, with null as a first-class
// member of every typed slot rather than a sentinel or wrapper type.
package value

import "fmt"

// Type is one of the closed set of scalar types a Value can carry.
type Type int

const (
	Integer Type = iota
	Number
	String
	Boolean
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Number:
		return "Number"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is a scalar: a declared Type plus either a typed payload or Null.
// Null is a value, not an absence — a Value with IsNull true still carries
// a Type, the type its typed slot was declared as.
type Value struct {
	Type Type
	null bool
	i    int64
	f    float64
	s    string
	b    bool
}

// Int constructs a non-null Integer value.
func Int(v int64) Value { return Value{Type: Integer, i: v} }

// Num constructs a non-null Number value.
func Num(v float64) Value { return Value{Type: Number, f: v} }

// Str constructs a non-null String value.
func Str(v string) Value { return Value{Type: String, s: v} }

// Bool constructs a non-null Boolean value.
func Bool(v bool) Value { return Value{Type: Boolean, b: v} }

// Null constructs a null value carrying the given declared type.
func Null(t Type) Value { return Value{Type: t, null: true} }

// IsNull reports whether v is the null member of its type.
func (v Value) IsNull() bool { return v.null }

// AsInt returns the underlying int64; only meaningful for non-null Integer.
func (v Value) AsInt() int64 { return v.i }

// AsNumber returns the underlying float64; only meaningful for non-null Number.
func (v Value) AsNumber() float64 { return v.f }

// AsString returns the underlying string; only meaningful for non-null String.
func (v Value) AsString() string { return v.s }

// AsBool returns the underlying bool; only meaningful for non-null Boolean.
func (v Value) AsBool() bool { return v.b }

// Numeric reports whether v's type is Integer or Number.
func (v Value) Numeric() bool { return v.Type == Integer || v.Type == Number }

// Float widens a non-null numeric value to float64, regardless of whether
// it is Integer or Number.
func (v Value) Float() float64 {
	if v.Type == Integer {
		return float64(v.i)
	}
	return v.f
}

// Equal implements the null-is-equal-to-null semantics used by set
// operators and row equality: two null values of the same declared type
// are equal, a null and a non-null value are never equal.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.null || other.null {
		return v.null == other.null
	}
	switch v.Type {
	case Integer:
		return v.i == other.i
	case Number:
		return v.f == other.f
	case String:
		return v.s == other.s
	case Boolean:
		return v.b == other.b
	default:
		return false
	}
}

// String renders v for diagnostics; not used for comparison or hashing.
func (v Value) String() string {
	if v.null {
		return "null"
	}
	switch v.Type {
	case Integer:
		return fmt.Sprintf("%d", v.i)
	case Number:
		return fmt.Sprintf("%g", v.f)
	case String:
		return v.s
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "?"
	}
}

// WidenNumeric returns the common numeric type of a and b: Integer
// combined with Number yields Number; Integer/Integer stays Integer.
// The arguments are not checked: any pair other than Integer/Integer,
// including a non-numeric type, yields Number, so callers must check
// Numeric() first.
func WidenNumeric(a, b Type) Type {
	if a != Integer || b != Integer {
		return Number
	}
	return Integer
}

// HashKey returns a value usable as a Go map key that respects Equal's
// null-is-equal-to-null semantics, for use by set/group operators.
func (v Value) HashKey() any {
	if v.null {
		return struct {
			t Type
			n bool
		}{v.Type, true}
	}
	switch v.Type {
	case Integer:
		return v.i
	case Number:
		return v.f
	case String:
		return v.s
	case Boolean:
		return v.b
	default:
		return nil
	}
}
