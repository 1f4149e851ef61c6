package expr

import "github.com/insee-trevas/vtlengine/value"

// Conditional implements "if cond then a else b". Both branches must
// share a common widened type; if cond is null the result is null at
// that common type.
type Conditional struct {
	Cond, Then, Else Expr
	typ              value.Type
}

// NewConditional builds and type-checks a conditional expression.
func NewConditional(cond, then, els Expr) (*Conditional, error) {
	if cond.Type() != value.Boolean {
		return nil, unsupportedType("if condition must be boolean, got %s", cond.Type())
	}
	typ, err := commonType(then.Type(), els.Type())
	if err != nil {
		return nil, err
	}
	return &Conditional{Cond: cond, Then: then, Else: els, typ: typ}, nil
}

func commonType(a, b value.Type) (value.Type, error) {
	if a == b {
		return a, nil
	}
	if numeric(a) && numeric(b) {
		return value.WidenNumeric(a, b), nil
	}
	return 0, unsupportedType("branches have incompatible types %s and %s", a, b)
}

func (c *Conditional) Type() value.Type { return c.typ }

func (c *Conditional) Resolve(ctx Context) (value.Value, error) {
	cond, err := c.Cond.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if cond.IsNull() {
		return value.Null(c.typ), nil
	}
	var branch Expr
	if cond.AsBool() {
		branch = c.Then
	} else {
		branch = c.Else
	}
	v, err := branch.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	return widenTo(v, c.typ), nil
}

// widenTo re-tags a numeric value to the conditional's common result
// type, so both branches report the same declared Type even when one
// branch is Integer and the other Number.
func widenTo(v value.Value, typ value.Type) value.Value {
	if v.Type == typ {
		return v
	}
	if v.IsNull() {
		return value.Null(typ)
	}
	if typ == value.Number && v.Type == value.Integer {
		return value.Num(float64(v.AsInt()))
	}
	return v
}
