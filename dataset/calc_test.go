package dataset

import (
	"testing"

	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

func TestCalcAppendsNewComponent(t *testing.T) {
	child := NewConst(salesDataset(t))
	col, err := expr.NewColumn(child.Structure(), "amount")
	if err != nil {
		t.Fatal(err)
	}
	two := expr.NewConstant(value.Num(2))
	doubled, err := expr.NewArithmetic(expr.Mul, col, two)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCalc(child, []CalcAssignment{{Name: "doubled", Expr: doubled, Role: structure.Measure}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Structure().Index("doubled") < 0 {
		t.Fatal("expected a new doubled component")
	}
	rows := materialize(t, c)
	v, ok := rows[0].Get("doubled")
	if !ok || v.AsNumber() != 20 {
		t.Errorf("doubled for row 0 = %v, %v, want 20", v, ok)
	}
}

func TestCalcReplacesExistingComponentInPlace(t *testing.T) {
	child := NewConst(salesDataset(t))
	one := expr.NewConstant(value.Num(1))
	c, err := NewCalc(child, []CalcAssignment{{Name: "amount", Expr: one, Role: structure.Measure}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Structure().Components) != 3 {
		t.Fatalf("replacing a component should not change arity, got %d components", len(c.Structure().Components))
	}
	rows := materialize(t, c)
	v, _ := rows[0].Get("amount")
	if v.AsNumber() != 1 {
		t.Errorf("amount after replacement = %v, want 1", v)
	}
}

func TestCalcRejectsRoleChangeOnReplace(t *testing.T) {
	child := NewConst(salesDataset(t))
	one := expr.NewConstant(value.Num(1))
	_, err := NewCalc(child, []CalcAssignment{{Name: "amount", Expr: one, Role: structure.Attribute}}, nil)
	if err == nil {
		t.Error("expected an error replacing a measure with a different role")
	}
}
