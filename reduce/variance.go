package reduce

import (
	"math"

	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
	"github.com/insee-trevas/vtlengine/verrors"
)

type varianceAcc struct {
	vals    []float64
	sawNull bool
}

// StddevPop builds a population standard deviation reducer.
func StddevPop(e expr.Expr) (Reducer, error) { return varianceReducer(e, true, true) }

// StddevSamp builds a sample standard deviation reducer.
func StddevSamp(e expr.Expr) (Reducer, error) { return varianceReducer(e, false, true) }

// VarPop builds a population variance reducer.
func VarPop(e expr.Expr) (Reducer, error) { return varianceReducer(e, true, false) }

// VarSamp builds a sample variance reducer.
func VarSamp(e expr.Expr) (Reducer, error) { return varianceReducer(e, false, false) }

// varianceReducer implements the stddev/var pop/samp rules: divide the
// sum of squared deviations from the mean by N (population) or N-1
// (sample); empty or singleton input yields 0.0; any null input yields
// null.
func varianceReducer(e expr.Expr, population, sqrt bool) (Reducer, error) {
	if !numeric(e.Type()) {
		return nil, verrors.New(verrors.UnsupportedType, "stddev/var requires a numeric input, got %s", e.Type())
	}
	return &generic[varianceAcc]{
		resultType: value.Number,
		child:      e,
		seed:       func() varianceAcc { return varianceAcc{} },
		step: func(acc varianceAcc, v value.Value) varianceAcc {
			if v.IsNull() {
				acc.sawNull = true
				return acc
			}
			acc.vals = append(append([]float64{}, acc.vals...), v.Float())
			return acc
		},
		combine: func(a, b varianceAcc) varianceAcc {
			vals := append(append([]float64{}, a.vals...), b.vals...)
			return varianceAcc{vals: vals, sawNull: a.sawNull || b.sawNull}
		},
		finish: func(acc varianceAcc) value.Value {
			if acc.sawNull {
				return value.Null(value.Number)
			}
			n := len(acc.vals)
			if n <= 1 {
				return value.Num(0)
			}
			var mean float64
			for _, v := range acc.vals {
				mean += v
			}
			mean /= float64(n)

			var sumSq float64
			for _, v := range acc.vals {
				d := v - mean
				sumSq += d * d
			}
			divisor := float64(n)
			if !population {
				divisor = float64(n - 1)
			}
			result := sumSq / divisor
			if sqrt {
				result = math.Sqrt(result)
			}
			return value.Num(result)
		},
	}, nil
}
