package dataset

import (
	"testing"

	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
)

func TestFilterKeepsOnlyTrueRows(t *testing.T) {
	child := NewConst(salesDataset(t))
	col, err := expr.NewColumn(child.Structure(), "amount")
	if err != nil {
		t.Fatal(err)
	}
	threshold := expr.NewConstant(value.Num(6))
	cond, err := expr.NewComparison(expr.Gt, col, threshold)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFilter(child, cond, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows := materialize(t, f)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (amounts 10 and 7)", len(rows))
	}
}

func TestFilterRejectsNonBooleanCondition(t *testing.T) {
	child := NewConst(salesDataset(t))
	col, err := expr.NewColumn(child.Structure(), "amount")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewFilter(child, col, nil); err == nil {
		t.Error("expected an error for a non-boolean filter condition")
	}
}

func TestFilterDiscardsNullCondition(t *testing.T) {
	child := NewConst(salesDataset(t))
	col, err := expr.NewColumn(child.Structure(), "note")
	if err != nil {
		t.Fatal(err)
	}
	// note is never null in the fixture; is null itself is always Boolean
	// and never null, so build a condition that IS null via a null operand
	// to a comparison instead.
	nullNote := expr.NewConstant(value.Null(value.String))
	cond, err := expr.NewComparison(expr.Eq, col, nullNote)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewFilter(child, cond, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows := materialize(t, f)
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0: a null comparison result must discard the row like false", len(rows))
	}
}
