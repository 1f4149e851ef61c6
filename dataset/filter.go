package dataset

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// Filter implements the filter operator: a boolean scalar expression
// over a data point. Rows where the expression is false or null are
// discarded (SQL WHERE semantics).
type Filter struct {
	Child Expr
	Cond  expr.Expr
	Env   expr.Lookup
}

// NewFilter builds a filter operator, requiring cond to be boolean. env
// is consulted when cond references a bound scalar identifier rather than
// a row column; pass nil when cond only references columns.
func NewFilter(child Expr, cond expr.Expr, env expr.Lookup) (*Filter, error) {
	if cond.Type() != value.Boolean {
		return nil, invalidArg("filter: condition must be boolean, got %s", cond.Type())
	}
	return &Filter{Child: child, Cond: cond, Env: env}, nil
}

func (f *Filter) Structure() structure.DataStructure { return f.Child.Structure() }

func (f *Filter) Resolve() (*Dataset, error) {
	childDS, err := f.Child.Resolve()
	if err != nil {
		return nil, err
	}
	cond := f.Cond
	env := f.Env
	fn := func(dp structure.DataPoint) (structure.DataPoint, bool, error) {
		v, err := cond.Resolve(expr.WithPoint(dp, env))
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		if v.IsNull() || !v.AsBool() {
			return structure.DataPoint{}, false, nil
		}
		return dp, true, nil
	}
	return mapDataset(childDS.Structure, childDS, fn), nil
}
