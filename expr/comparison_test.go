package expr

import (
	"testing"

	"github.com/insee-trevas/vtlengine/value"
)

func TestComparisonNumeric(t *testing.T) {
	cmp, err := NewComparison(Lt, NewConstant(value.Int(1)), NewConstant(value.Num(2)))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, cmp); !v.AsBool() {
		t.Error("1 < 2.0 should be true")
	}
}

func TestComparisonString(t *testing.T) {
	cmp, err := NewComparison(Eq, NewConstant(value.Str("a")), NewConstant(value.Str("a")))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, cmp); !v.AsBool() {
		t.Error(`"a" == "a" should be true`)
	}
}

func TestComparisonBooleanOnlyEqAndNeq(t *testing.T) {
	if _, err := NewComparison(Lt, NewConstant(value.Bool(true)), NewConstant(value.Bool(false))); err == nil {
		t.Error("expected an error ordering booleans with <")
	}
	eq, err := NewComparison(Eq, NewConstant(value.Bool(true)), NewConstant(value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, eq); !v.AsBool() {
		t.Error("true == true should be true")
	}
}

func TestComparisonRejectsCrossTypeCompare(t *testing.T) {
	if _, err := NewComparison(Eq, NewConstant(value.Str("a")), NewConstant(value.Int(1))); err == nil {
		t.Error("expected an error comparing a string with an integer")
	}
}

func TestComparisonNullYieldsNull(t *testing.T) {
	cmp, err := NewComparison(Eq, NewConstant(value.Null(value.Integer)), NewConstant(value.Int(1)))
	if err != nil {
		t.Fatal(err)
	}
	if v := resolveOrFatal(t, cmp); !v.IsNull() {
		t.Errorf("comparing null to a non-null value = %v, want null", v)
	}
}
