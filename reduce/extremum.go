package reduce

import (
	"strings"

	"github.com/insee-trevas/vtlengine/value"
)

type extremumAcc struct {
	v   value.Value
	has bool
}

// compareNullsFirst orders values with null treated as less than any
// non-null value.
func compareNullsFirst(a, b value.Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	switch a.Type {
	case value.String:
		return strings.Compare(a.AsString(), b.AsString())
	case value.Boolean:
		return boolOrder(a.AsBool(), b.AsBool())
	default:
		af, bf := a.Float(), b.Float()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
}

func boolOrder(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}
