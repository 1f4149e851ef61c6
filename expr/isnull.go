package expr

import "github.com/insee-trevas/vtlengine/value"

// IsNull implements the null test: Boolean, never null itself.
type IsNull struct {
	Operand Expr
	Negate  bool
}

// NewIsNull builds an isnull(x) expression. Construction never fails:
// every scalar type admits null.
func NewIsNull(operand Expr, negate bool) *IsNull {
	return &IsNull{Operand: operand, Negate: negate}
}

func (n *IsNull) Type() value.Type { return value.Boolean }

func (n *IsNull) Resolve(ctx Context) (value.Value, error) {
	v, err := n.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	isNull := v.IsNull()
	if n.Negate {
		isNull = !isNull
	}
	return value.Bool(isNull), nil
}
