package expr

import (
	"testing"

	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

type fakeEnv struct {
	vals map[string]value.Value
}

func (e *fakeEnv) LookupScalar(name string) (value.Value, error) {
	v, ok := e.vals[name]
	if !ok {
		return value.Value{}, undefinedRef(name)
	}
	return v, nil
}

func TestConstantResolvesToItself(t *testing.T) {
	c := NewConstant(value.Int(5))
	v, err := c.Resolve(Empty(nil))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 5 {
		t.Errorf("Resolve = %v, want 5", v)
	}
	if c.Type() != value.Integer {
		t.Errorf("Type() = %s, want Integer", c.Type())
	}
}

func TestIdentifierResolvesAgainstEnv(t *testing.T) {
	env := &fakeEnv{vals: map[string]value.Value{"x": value.Num(3.5)}}
	id := NewIdentifier("x", value.Number)
	v, err := id.Resolve(Empty(env))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsNumber() != 3.5 {
		t.Errorf("Resolve = %v, want 3.5", v)
	}
}

func TestIdentifierErrorsWithoutEnv(t *testing.T) {
	id := NewIdentifier("x", value.Number)
	if _, err := id.Resolve(Empty(nil)); err == nil {
		t.Error("expected an error resolving an identifier with no environment")
	}
}

func testRowStructure(t *testing.T) structure.DataStructure {
	t.Helper()
	s, err := structure.New(structure.Component{Name: "amount", Type: value.Number, Role: structure.Measure})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestColumnResolvesAgainstRow(t *testing.T) {
	s := testRowStructure(t)
	col, err := NewColumn(s, "amount")
	if err != nil {
		t.Fatal(err)
	}
	dp, err := structure.NewDataPoint(s, []value.Value{value.Num(9)})
	if err != nil {
		t.Fatal(err)
	}
	v, err := col.Resolve(WithPoint(dp, nil))
	if err != nil {
		t.Fatal(err)
	}
	if v.AsNumber() != 9 {
		t.Errorf("Resolve = %v, want 9", v)
	}
}

func TestColumnErrorsOutsideRowContext(t *testing.T) {
	s := testRowStructure(t)
	col, err := NewColumn(s, "amount")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := col.Resolve(Empty(nil)); err == nil {
		t.Error("expected an error referencing a column with no row context")
	}
}

func TestNewColumnRejectsUnknownName(t *testing.T) {
	s := testRowStructure(t)
	if _, err := NewColumn(s, "missing"); err == nil {
		t.Error("expected an error building a column reference for an unknown name")
	}
}
