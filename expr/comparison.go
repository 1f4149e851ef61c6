package expr

import (
	"strings"

	"github.com/insee-trevas/vtlengine/value"
)

// CompareOp is one of the binary comparison operators.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "<>"
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	default:
		return "?"
	}
}

// Comparison is a binary comparison expression. Numerics compare under a
// total order (after widening); strings compare lexicographically by
// code point; booleans support only = and <>. Any null operand yields a
// null Boolean result.
type Comparison struct {
	Op          CompareOp
	Left, Right Expr
}

// NewComparison builds and type-checks a comparison expression.
func NewComparison(op CompareOp, left, right Expr) (*Comparison, error) {
	lt, rt := left.Type(), right.Type()
	switch {
	case numeric(lt) && numeric(rt):
	case lt == value.String && rt == value.String:
	case lt == value.Boolean && rt == value.Boolean:
		if op != Eq && op != Neq {
			return nil, unsupportedType("boolean operands only support = and <>, got %s", op)
		}
	default:
		return nil, unsupportedType("cannot compare %s with %s", lt, rt)
	}
	return &Comparison{Op: op, Left: left, Right: right}, nil
}

func (c *Comparison) Type() value.Type { return value.Boolean }

func (c *Comparison) Resolve(ctx Context) (value.Value, error) {
	l, err := c.Left.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	r, err := c.Right.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if l.IsNull() || r.IsNull() {
		return value.Null(value.Boolean), nil
	}

	var cmp int
	switch {
	case l.Type == value.String:
		cmp = strings.Compare(l.AsString(), r.AsString())
	case l.Type == value.Boolean:
		cmp = boolCmp(l.AsBool(), r.AsBool())
	default:
		lf, rf := l.Float(), r.Float()
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		default:
			cmp = 0
		}
	}

	return value.Bool(applyCompare(c.Op, cmp)), nil
}

func boolCmp(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func applyCompare(op CompareOp, cmp int) bool {
	switch op {
	case Eq:
		return cmp == 0
	case Neq:
		return cmp != 0
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Gte:
		return cmp >= 0
	default:
		return false
	}
}
