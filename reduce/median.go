package reduce

import (
	"sort"

	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
	"github.com/insee-trevas/vtlengine/verrors"
)

type medianAcc struct {
	vals    []float64
	sawNull bool
}

// Median builds a median reducer. Result is Number. If any input
// (including nulls skipped by other reducers) is null, the result is
// null; otherwise values are sorted ascending and the median taken —
// averaging the two middle values for an even count. Empty input yields
// null.
func Median(e expr.Expr) (Reducer, error) {
	if !numeric(e.Type()) {
		return nil, verrors.New(verrors.UnsupportedType, "median requires a numeric input, got %s", e.Type())
	}
	return &generic[medianAcc]{
		resultType: value.Number,
		child:      e,
		seed:       func() medianAcc { return medianAcc{} },
		step: func(acc medianAcc, v value.Value) medianAcc {
			if v.IsNull() {
				acc.sawNull = true
				return acc
			}
			acc.vals = append(append([]float64{}, acc.vals...), v.Float())
			return acc
		},
		combine: func(a, b medianAcc) medianAcc {
			vals := append(append([]float64{}, a.vals...), b.vals...)
			return medianAcc{vals: vals, sawNull: a.sawNull || b.sawNull}
		},
		finish: func(acc medianAcc) value.Value {
			if acc.sawNull {
				return value.Null(value.Number)
			}
			n := len(acc.vals)
			if n == 0 {
				return value.Null(value.Number)
			}
			sorted := append([]float64{}, acc.vals...)
			sort.Float64s(sorted)
			if n%2 == 0 {
				return value.Num((sorted[n/2-1] + sorted[n/2]) / 2)
			}
			return value.Num(sorted[n/2])
		},
	}, nil
}
