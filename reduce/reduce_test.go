package reduce

import (
	"testing"

	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

func amountStructure(t *testing.T) structure.DataStructure {
	t.Helper()
	s, err := structure.New(structure.Component{Name: "amount", Type: value.Number, Role: structure.Measure})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func amountColumn(t *testing.T) expr.Expr {
	t.Helper()
	col, err := expr.NewColumn(amountStructure(t), "amount")
	if err != nil {
		t.Fatal(err)
	}
	return col
}

func row(t *testing.T, s structure.DataStructure, v value.Value) structure.DataPoint {
	t.Helper()
	dp, err := structure.NewDataPoint(s, []value.Value{v})
	if err != nil {
		t.Fatal(err)
	}
	return dp
}

// runReducer folds r over vals sequentially, the simplest valid use of
// the seed/accumulate/finish contract.
func runReducer(t *testing.T, r Reducer, s structure.DataStructure, vals []value.Value) value.Value {
	t.Helper()
	acc := r.Seed()
	for _, v := range vals {
		var err error
		acc, err = r.Accumulate(acc, row(t, s, v))
		if err != nil {
			t.Fatalf("Accumulate: %v", err)
		}
	}
	return r.Finish(acc)
}

func TestSumIntegerSkipsNulls(t *testing.T) {
	s, err := structure.New(structure.Component{Name: "n", Type: value.Integer, Role: structure.Measure})
	if err != nil {
		t.Fatal(err)
	}
	col, err := expr.NewColumn(s, "n")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Sum(col)
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, []value.Value{value.Int(1), value.Null(value.Integer), value.Int(2)})
	if got.AsInt() != 3 {
		t.Errorf("Sum = %v, want 3", got)
	}
}

func TestSumEmptyIsNull(t *testing.T) {
	s, err := structure.New(structure.Component{Name: "n", Type: value.Integer, Role: structure.Measure})
	if err != nil {
		t.Fatal(err)
	}
	col, err := expr.NewColumn(s, "n")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Sum(col)
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, nil)
	if !got.IsNull() {
		t.Errorf("Sum of no rows = %v, want null", got)
	}
}

func TestAvg(t *testing.T) {
	s := amountStructure(t)
	r, err := Avg(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, []value.Value{value.Num(1), value.Num(2), value.Num(3)})
	if got.AsNumber() != 2 {
		t.Errorf("Avg = %v, want 2", got)
	}
}

func TestMedianOddAndEven(t *testing.T) {
	s := amountStructure(t)
	r, err := Median(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	odd := runReducer(t, r, s, []value.Value{value.Num(3), value.Num(1), value.Num(2)})
	if odd.AsNumber() != 2 {
		t.Errorf("Median([3,1,2]) = %v, want 2", odd)
	}
	r2, err := Median(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	even := runReducer(t, r2, s, []value.Value{value.Num(1), value.Num(2), value.Num(3), value.Num(4)})
	if even.AsNumber() != 2.5 {
		t.Errorf("Median([1,2,3,4]) = %v, want 2.5", even)
	}
}

func TestMedianAnyNullIsNull(t *testing.T) {
	s := amountStructure(t)
	r, err := Median(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, []value.Value{value.Num(1), value.Null(value.Number)})
	if !got.IsNull() {
		t.Errorf("Median with a null input = %v, want null", got)
	}
}

func TestMinMaxNullHandling(t *testing.T) {
	s := amountStructure(t)

	minR, err := Min(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	gotMin := runReducer(t, minR, s, []value.Value{value.Num(5), value.Null(value.Number), value.Num(2)})
	if !gotMin.IsNull() {
		t.Errorf("Min with a null in the group = %v, want null (nulls sort first)", gotMin)
	}

	maxR, err := Max(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	gotMax := runReducer(t, maxR, s, []value.Value{value.Num(5), value.Null(value.Number), value.Num(2)})
	if gotMax.AsNumber() != 5 {
		t.Errorf("Max with a null in the group = %v, want 5", gotMax)
	}
}

func TestMinMaxEmptyIsNull(t *testing.T) {
	s := amountStructure(t)
	r, err := Max(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, nil)
	if !got.IsNull() {
		t.Errorf("Max of no rows = %v, want null", got)
	}
}

func TestStddevPopAndSamp(t *testing.T) {
	s := amountStructure(t)
	vals := []value.Value{value.Num(2), value.Num(4), value.Num(4), value.Num(4), value.Num(5), value.Num(5), value.Num(7), value.Num(9)}

	pop, err := StddevPop(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	gotPop := runReducer(t, pop, s, vals).AsNumber()
	if diff := gotPop - 2.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("StddevPop = %v, want ~2.0", gotPop)
	}

	samp, err := StddevSamp(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	gotSamp := runReducer(t, samp, s, vals).AsNumber()
	if gotSamp <= gotPop {
		t.Errorf("StddevSamp = %v, should be larger than StddevPop = %v", gotSamp, gotPop)
	}
}

func TestVarianceSingletonIsZero(t *testing.T) {
	s := amountStructure(t)
	r, err := VarPop(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	got := runReducer(t, r, s, []value.Value{value.Num(42)})
	if got.AsNumber() != 0 {
		t.Errorf("VarPop of a single value = %v, want 0", got)
	}
}

func TestCountIncludesNulls(t *testing.T) {
	s := amountStructure(t)
	r := Count()
	got := runReducer(t, r, s, []value.Value{value.Num(1), value.Null(value.Number), value.Num(3)})
	if got.AsInt() != 3 {
		t.Errorf("Count = %v, want 3", got)
	}
}

func TestCombineIsAssociativeWithSum(t *testing.T) {
	s := amountStructure(t)
	r, err := Sum(amountColumn(t))
	if err != nil {
		t.Fatal(err)
	}
	vals := []value.Value{value.Num(1), value.Num(2), value.Num(3), value.Num(4)}

	whole := runReducer(t, r, s, vals)

	r1, _ := Sum(amountColumn(t))
	r2, _ := Sum(amountColumn(t))
	part1 := partialAccumulate(t, r1, s, vals[:2])
	part2 := partialAccumulate(t, r2, s, vals[2:])
	combined := r.Finish(r.Combine(part1, part2))

	if whole.AsNumber() != combined.AsNumber() {
		t.Errorf("sequential fold = %v, combined partitions = %v, want equal", whole, combined)
	}
}

func partialAccumulate(t *testing.T, r Reducer, s structure.DataStructure, vals []value.Value) any {
	t.Helper()
	acc := r.Seed()
	for _, v := range vals {
		var err error
		acc, err = r.Accumulate(acc, row(t, s, v))
		if err != nil {
			t.Fatal(err)
		}
	}
	return acc
}

func TestSumRejectsNonNumeric(t *testing.T) {
	s, err := structure.New(structure.Component{Name: "s", Type: value.String, Role: structure.Measure})
	if err != nil {
		t.Fatal(err)
	}
	col, err := expr.NewColumn(s, "s")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Sum(col); err == nil {
		t.Error("Sum of a non-numeric column should be rejected")
	}
}
