package expr

import (
	"testing"

	"github.com/insee-trevas/vtlengine/value"
)

func TestConditionalPicksBranch(t *testing.T) {
	c, err := NewConditional(NewConstant(value.Bool(true)), NewConstant(value.Int(1)), NewConstant(value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, c); v.AsInt() != 1 {
		t.Errorf("if true then 1 else 2 = %v, want 1", v)
	}
}

func TestConditionalNullConditionIsNull(t *testing.T) {
	c, err := NewConditional(NewConstant(value.Null(value.Boolean)), NewConstant(value.Int(1)), NewConstant(value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, c); !v.IsNull() {
		t.Errorf("if null then 1 else 2 = %v, want null", v)
	}
}

func TestConditionalWidensBranchTypes(t *testing.T) {
	c, err := NewConditional(NewConstant(value.Bool(false)), NewConstant(value.Int(1)), NewConstant(value.Num(2.5)))
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() != value.Number {
		t.Errorf("Type() = %s, want Number (widened from Integer/Number branches)", c.Type())
	}
	if v := resolveOrFatal(t, c); v.AsNumber() != 2.5 {
		t.Errorf("result = %v, want 2.5", v)
	}
}

func TestConditionalRejectsNonBooleanCondition(t *testing.T) {
	if _, err := NewConditional(NewConstant(value.Int(1)), NewConstant(value.Int(1)), NewConstant(value.Int(2))); err == nil {
		t.Error("expected an error for a non-boolean condition")
	}
}

func TestConditionalRejectsIncompatibleBranches(t *testing.T) {
	if _, err := NewConditional(NewConstant(value.Bool(true)), NewConstant(value.Str("a")), NewConstant(value.Int(1))); err == nil {
		t.Error("expected an error for branches of incompatible types")
	}
}
