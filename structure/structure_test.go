package structure

import (
	"testing"

	"github.com/insee-trevas/vtlengine/value"
)

func testStructure(t *testing.T) DataStructure {
	t.Helper()
	s, err := New(
		Component{Name: "id", Type: value.Integer, Role: Identifier},
		Component{Name: "amount", Type: value.Number, Role: Measure},
		Component{Name: "flag", Type: value.Boolean, Role: Attribute},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		Component{Name: "id", Type: value.Integer, Role: Identifier},
		Component{Name: "id", Type: value.String, Role: Measure},
	)
	if err == nil {
		t.Fatal("expected an error for duplicate component names")
	}
}

func TestIndexAndComponent(t *testing.T) {
	s := testStructure(t)
	if s.Index("amount") != 1 {
		t.Errorf("Index(amount) = %d, want 1", s.Index("amount"))
	}
	if s.Index("missing") != -1 {
		t.Errorf("Index(missing) = %d, want -1", s.Index("missing"))
	}
	c, ok := s.Component("flag")
	if !ok || c.Role != Attribute {
		t.Errorf("Component(flag) = %+v, %v", c, ok)
	}
}

func TestIdentifiers(t *testing.T) {
	s := testStructure(t)
	ids := s.Identifiers()
	if len(ids) != 1 || ids[0].Name != "id" {
		t.Errorf("Identifiers() = %+v", ids)
	}
}

func TestHasIdentifier(t *testing.T) {
	s := testStructure(t)
	if !s.HasIdentifier() {
		t.Error("expected HasIdentifier to be true")
	}
	noID, err := New(Component{Name: "x", Type: value.Integer, Role: Measure})
	if err != nil {
		t.Fatal(err)
	}
	if noID.HasIdentifier() {
		t.Error("expected HasIdentifier to be false with no identifier components")
	}
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := testStructure(t)
	b, err := New(
		Component{Name: "flag", Type: value.Boolean, Role: Attribute},
		Component{Name: "id", Type: value.Integer, Role: Identifier},
		Component{Name: "amount", Type: value.Number, Role: Measure},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("structures with the same components in a different order should be equal")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a := testStructure(t)
	b, err := New(Component{Name: "id", Type: value.Integer, Role: Identifier})
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("structures with different component sets should not be equal")
	}
}

func TestNewDataPointValidatesArityAndType(t *testing.T) {
	s := testStructure(t)
	if _, err := NewDataPoint(s, []value.Value{value.Int(1)}); err == nil {
		t.Error("expected an arity error")
	}
	if _, err := NewDataPoint(s, []value.Value{value.Int(1), value.Num(2), value.Str("no")}); err == nil {
		t.Error("expected a type mismatch error for the flag column")
	}
}

func TestDataPointGetAndAt(t *testing.T) {
	s := testStructure(t)
	dp, err := NewDataPoint(s, []value.Value{value.Int(7), value.Num(1.5), value.Bool(true)})
	if err != nil {
		t.Fatalf("NewDataPoint: %v", err)
	}
	v, ok := dp.Get("amount")
	if !ok || v.AsNumber() != 1.5 {
		t.Errorf("Get(amount) = %v, %v", v, ok)
	}
	if dp.At(0).AsInt() != 7 {
		t.Errorf("At(0) = %v, want 7", dp.At(0))
	}
	if _, ok := dp.Get("missing"); ok {
		t.Error("Get of a missing component should report ok=false")
	}
}

func TestNewDataPointCopiesInputSlice(t *testing.T) {
	s := testStructure(t)
	input := []value.Value{value.Int(1), value.Num(1), value.Bool(false)}
	dp, err := NewDataPoint(s, input)
	if err != nil {
		t.Fatal(err)
	}
	input[0] = value.Int(999)
	if dp.At(0).AsInt() == 999 {
		t.Error("mutating the caller's input slice after construction must not affect the DataPoint")
	}
}
