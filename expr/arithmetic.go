package expr

import "github.com/insee-trevas/vtlengine/value"

// ArithOp is one of the binary arithmetic operators.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Arithmetic is a binary arithmetic expression. Construction validates
// that both operands are numeric, widening Integer and Number to their
// common type.
type Arithmetic struct {
	Op          ArithOp
	Left, Right Expr
	typ         value.Type
}

// NewArithmetic builds and type-checks an arithmetic expression.
func NewArithmetic(op ArithOp, left, right Expr) (*Arithmetic, error) {
	if !numeric(left.Type()) || !numeric(right.Type()) {
		return nil, unsupportedType("arithmetic operator %q requires numeric operands, got %s and %s", op, left.Type(), right.Type())
	}
	typ := value.WidenNumeric(left.Type(), right.Type())
	if op == Div {
		typ = value.Number
	}
	return &Arithmetic{Op: op, Left: left, Right: right, typ: typ}, nil
}

func numeric(t value.Type) bool { return t == value.Integer || t == value.Number }

func (a *Arithmetic) Type() value.Type { return a.typ }

func (a *Arithmetic) Resolve(ctx Context) (value.Value, error) {
	l, err := a.Left.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	r, err := a.Right.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if l.IsNull() || r.IsNull() {
		return value.Null(a.typ), nil
	}

	if a.Op == Div {
		rf := r.Float()
		if rf == 0 {
			return value.Null(value.Number), nil
		}
		return value.Num(l.Float() / rf), nil
	}

	if a.typ == value.Integer {
		li, ri := l.AsInt(), r.AsInt()
		switch a.Op {
		case Add:
			return value.Int(li + ri), nil
		case Sub:
			return value.Int(li - ri), nil
		case Mul:
			return value.Int(li * ri), nil
		}
	}

	lf, rf := l.Float(), r.Float()
	switch a.Op {
	case Add:
		return value.Num(lf + rf), nil
	case Sub:
		return value.Num(lf - rf), nil
	case Mul:
		return value.Num(lf * rf), nil
	}
	return value.Value{}, unsupportedOp("unknown arithmetic operator %q", a.Op)
}

// UnaryArithOp is a unary sign operator.
type UnaryArithOp int

const (
	Neg UnaryArithOp = iota
	Pos
)

// UnaryArithmetic is unary +/- on a numeric operand.
type UnaryArithmetic struct {
	Op      UnaryArithOp
	Operand Expr
}

// NewUnaryArithmetic builds and type-checks a unary arithmetic expression.
func NewUnaryArithmetic(op UnaryArithOp, operand Expr) (*UnaryArithmetic, error) {
	if !numeric(operand.Type()) {
		return nil, unsupportedType("unary %s requires a numeric operand, got %s", unaryOpName(op), operand.Type())
	}
	return &UnaryArithmetic{Op: op, Operand: operand}, nil
}

func unaryOpName(op UnaryArithOp) string {
	if op == Neg {
		return "-"
	}
	return "+"
}

func (u *UnaryArithmetic) Type() value.Type { return u.Operand.Type() }

func (u *UnaryArithmetic) Resolve(ctx Context) (value.Value, error) {
	v, err := u.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return v, nil
	}
	if u.Op == Pos {
		return v, nil
	}
	if v.Type == value.Integer {
		return value.Int(-v.AsInt()), nil
	}
	return value.Num(-v.AsNumber()), nil
}
