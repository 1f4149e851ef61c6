package reduce

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
	"github.com/insee-trevas/vtlengine/verrors"
)

type sumAcc struct {
	intSum   int64
	floatSum float64
	any      bool
}

// Sum builds a sum reducer type-dispatched on e's result type: Integer
// input produces an Integer result, Number input produces a Number
// result. Nulls are skipped; an all-null or empty group yields null.
func Sum(e expr.Expr) (Reducer, error) {
	switch e.Type() {
	case value.Integer:
		return &generic[sumAcc]{
			resultType: value.Integer,
			child:      e,
			seed:       func() sumAcc { return sumAcc{} },
			step: func(acc sumAcc, v value.Value) sumAcc {
				if v.IsNull() {
					return acc
				}
				return sumAcc{intSum: acc.intSum + v.AsInt(), any: true}
			},
			combine: func(a, b sumAcc) sumAcc {
				return sumAcc{intSum: a.intSum + b.intSum, any: a.any || b.any}
			},
			finish: func(acc sumAcc) value.Value {
				if !acc.any {
					return value.Null(value.Integer)
				}
				return value.Int(acc.intSum)
			},
		}, nil
	case value.Number:
		return &generic[sumAcc]{
			resultType: value.Number,
			child:      e,
			seed:       func() sumAcc { return sumAcc{} },
			step: func(acc sumAcc, v value.Value) sumAcc {
				if v.IsNull() {
					return acc
				}
				return sumAcc{floatSum: acc.floatSum + v.Float(), any: true}
			},
			combine: func(a, b sumAcc) sumAcc {
				return sumAcc{floatSum: a.floatSum + b.floatSum, any: a.any || b.any}
			},
			finish: func(acc sumAcc) value.Value {
				if !acc.any {
					return value.Null(value.Number)
				}
				return value.Num(acc.floatSum)
			},
		}, nil
	default:
		return nil, verrors.New(verrors.UnsupportedType, "sum requires a numeric input, got %s", e.Type())
	}
}
