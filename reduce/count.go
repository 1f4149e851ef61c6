package reduce

import "github.com/insee-trevas/vtlengine/value"

// Count counts data points, including those with nulls, and takes no
// expression.
func Count() Reducer {
	return &generic[int64]{
		resultType: value.Integer,
		seed:       func() int64 { return 0 },
		step:       func(acc int64, _ value.Value) int64 { return acc + 1 },
		combine:    func(a, b int64) int64 { return a + b },
		finish:     func(acc int64) value.Value { return value.Int(acc) },
	}
}
