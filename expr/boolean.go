package expr

import "github.com/insee-trevas/vtlengine/value"

// BoolOp is one of the binary boolean operators.
type BoolOp int

const (
	And BoolOp = iota
	Or
	Xor
)

func (op BoolOp) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	default:
		return "?"
	}
}

// BooleanBinary implements Kleene three-valued logic for and/or/xor.
// Both operands are always resolved — and/or do not short-circuit,
// since doing so would hide the null each side contributes.
type BooleanBinary struct {
	Op          BoolOp
	Left, Right Expr
}

// NewBooleanBinary builds and type-checks a boolean binary expression.
func NewBooleanBinary(op BoolOp, left, right Expr) (*BooleanBinary, error) {
	if left.Type() != value.Boolean || right.Type() != value.Boolean {
		return nil, unsupportedType("%s requires boolean operands, got %s and %s", op, left.Type(), right.Type())
	}
	return &BooleanBinary{Op: op, Left: left, Right: right}, nil
}

func (b *BooleanBinary) Type() value.Type { return value.Boolean }

func (b *BooleanBinary) Resolve(ctx Context) (value.Value, error) {
	l, err := b.Left.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	r, err := b.Right.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}

	switch b.Op {
	case And:
		if !l.IsNull() && !l.AsBool() {
			return value.Bool(false), nil
		}
		if !r.IsNull() && !r.AsBool() {
			return value.Bool(false), nil
		}
		if l.IsNull() || r.IsNull() {
			return value.Null(value.Boolean), nil
		}
		return value.Bool(true), nil
	case Or:
		if !l.IsNull() && l.AsBool() {
			return value.Bool(true), nil
		}
		if !r.IsNull() && r.AsBool() {
			return value.Bool(true), nil
		}
		if l.IsNull() || r.IsNull() {
			return value.Null(value.Boolean), nil
		}
		return value.Bool(false), nil
	case Xor:
		if l.IsNull() || r.IsNull() {
			return value.Null(value.Boolean), nil
		}
		return value.Bool(l.AsBool() != r.AsBool()), nil
	default:
		return value.Value{}, unsupportedOp("unknown boolean operator %q", b.Op)
	}
}

// Not implements Kleene negation: not null = null.
type Not struct {
	Operand Expr
}

// NewNot builds and type-checks a boolean negation.
func NewNot(operand Expr) (*Not, error) {
	if operand.Type() != value.Boolean {
		return nil, unsupportedType("not requires a boolean operand, got %s", operand.Type())
	}
	return &Not{Operand: operand}, nil
}

func (n *Not) Type() value.Type { return value.Boolean }

func (n *Not) Resolve(ctx Context) (value.Value, error) {
	v, err := n.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return value.Null(value.Boolean), nil
	}
	return value.Bool(!v.AsBool()), nil
}
