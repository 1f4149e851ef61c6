package reduce

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
	"github.com/insee-trevas/vtlengine/verrors"
)

type avgAcc struct {
	sum   float64
	count int64
}

// Avg builds an average reducer. The result is always Number; nulls are
// skipped; an empty input yields null.
func Avg(e expr.Expr) (Reducer, error) {
	if !numeric(e.Type()) {
		return nil, verrors.New(verrors.UnsupportedType, "avg requires a numeric input, got %s", e.Type())
	}
	return &generic[avgAcc]{
		resultType: value.Number,
		child:      e,
		seed:       func() avgAcc { return avgAcc{} },
		step: func(acc avgAcc, v value.Value) avgAcc {
			if v.IsNull() {
				return acc
			}
			return avgAcc{sum: acc.sum + v.Float(), count: acc.count + 1}
		},
		combine: func(a, b avgAcc) avgAcc {
			return avgAcc{sum: a.sum + b.sum, count: a.count + b.count}
		},
		finish: func(acc avgAcc) value.Value {
			if acc.count == 0 {
				return value.Null(value.Number)
			}
			return value.Num(acc.sum / float64(acc.count))
		},
	}, nil
}

func numeric(t value.Type) bool { return t == value.Integer || t == value.Number }
