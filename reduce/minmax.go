package reduce

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
)

// Min builds a min reducer. Result type matches the input type; nulls
// sort first, so a null in the group wins the minimum. Empty input
// yields null.
func Min(e expr.Expr) (Reducer, error) {
	return extremum(e, -1), nil
}

// Max builds a max reducer. Result type matches the input type; nulls
// sort first, so they lose to any non-null value unless the group is
// all-null. Empty input yields null.
func Max(e expr.Expr) (Reducer, error) {
	return extremum(e, 1), nil
}

// extremum builds a min (wantSign<0) or max (wantSign>0) reducer: the
// accumulator keeps whichever candidate compares on the wanted side under
// compareNullsFirst.
func extremum(e expr.Expr, wantSign int) Reducer {
	typ := e.Type()
	pick := func(a, b value.Value) value.Value {
		cmp := compareNullsFirst(a, b)
		if wantSign < 0 {
			if cmp <= 0 {
				return a
			}
			return b
		}
		if cmp >= 0 {
			return a
		}
		return b
	}
	return &generic[extremumAcc]{
		resultType: typ,
		child:      e,
		seed:       func() extremumAcc { return extremumAcc{} },
		step: func(acc extremumAcc, v value.Value) extremumAcc {
			if !acc.has {
				return extremumAcc{v: v, has: true}
			}
			return extremumAcc{v: pick(acc.v, v), has: true}
		},
		combine: func(a, b extremumAcc) extremumAcc {
			if !a.has {
				return b
			}
			if !b.has {
				return a
			}
			return extremumAcc{v: pick(a.v, b.v), has: true}
		},
		finish: func(acc extremumAcc) value.Value {
			if !acc.has {
				return value.Null(typ)
			}
			return acc.v
		},
	}
}
