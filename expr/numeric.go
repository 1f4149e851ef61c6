package expr

import (
	"math"

	"github.com/insee-trevas/vtlengine/value"
)

// NumericUnaryOp is one of the single-argument numeric functions.
type NumericUnaryOp int

const (
	Abs NumericUnaryOp = iota
	Ceil
	Floor
	Sqrt
	Ln
	Exp
)

func (op NumericUnaryOp) String() string {
	switch op {
	case Abs:
		return "abs"
	case Ceil:
		return "ceil"
	case Floor:
		return "floor"
	case Sqrt:
		return "sqrt"
	case Ln:
		return "ln"
	case Exp:
		return "exp"
	default:
		return "?"
	}
}

// NumericFunc1 is a unary numeric function.
type NumericFunc1 struct {
	Op      NumericUnaryOp
	Operand Expr
	typ     value.Type
}

// NewNumericFunc1 builds and type-checks a unary numeric function call.
// abs preserves the operand's type (Integer stays Integer); the rest
// always produce Number.
func NewNumericFunc1(op NumericUnaryOp, operand Expr) (*NumericFunc1, error) {
	if !numeric(operand.Type()) {
		return nil, unsupportedType("%s requires a numeric operand, got %s", op, operand.Type())
	}
	typ := value.Number
	if op == Abs {
		typ = operand.Type()
	}
	return &NumericFunc1{Op: op, Operand: operand, typ: typ}, nil
}

func (f *NumericFunc1) Type() value.Type { return f.typ }

func (f *NumericFunc1) Resolve(ctx Context) (value.Value, error) {
	v, err := f.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return value.Null(f.typ), nil
	}
	switch f.Op {
	case Abs:
		if v.Type == value.Integer {
			n := v.AsInt()
			if n < 0 {
				n = -n
			}
			return value.Int(n), nil
		}
		return value.Num(math.Abs(v.AsNumber())), nil
	case Ceil:
		return value.Num(math.Ceil(v.Float())), nil
	case Floor:
		return value.Num(math.Floor(v.Float())), nil
	case Sqrt:
		f := v.Float()
		if f < 0 {
			return value.Null(value.Number), nil
		}
		return value.Num(math.Sqrt(f)), nil
	case Ln:
		f := v.Float()
		if f < 0 {
			return value.Null(value.Number), nil
		}
		return value.Num(math.Log(f)), nil
	case Exp:
		return value.Num(math.Exp(v.Float())), nil
	default:
		return value.Value{}, unsupportedOp("unknown numeric function %q", f.Op)
	}
}

// Round implements round(x, n): rounds x to n decimal digits.
type Round struct {
	X, N Expr
}

// NewRound builds and type-checks round(x, n).
func NewRound(x, n Expr) (*Round, error) {
	if !numeric(x.Type()) || !numeric(n.Type()) {
		return nil, unsupportedType("round requires numeric arguments, got %s and %s", x.Type(), n.Type())
	}
	return &Round{X: x, N: n}, nil
}

func (r *Round) Type() value.Type { return value.Number }

func (r *Round) Resolve(ctx Context) (value.Value, error) {
	return roundOrTrunc(ctx, r.X, r.N, true)
}

// Trunc implements trunc(x, n): truncates x to n decimal digits.
type Trunc struct {
	X, N Expr
}

// NewTrunc builds and type-checks trunc(x, n).
func NewTrunc(x, n Expr) (*Trunc, error) {
	if !numeric(x.Type()) || !numeric(n.Type()) {
		return nil, unsupportedType("trunc requires numeric arguments, got %s and %s", x.Type(), n.Type())
	}
	return &Trunc{X: x, N: n}, nil
}

func (t *Trunc) Type() value.Type { return value.Number }

func (t *Trunc) Resolve(ctx Context) (value.Value, error) {
	return roundOrTrunc(ctx, t.X, t.N, false)
}

func roundOrTrunc(ctx Context, x, n Expr, round bool) (value.Value, error) {
	xv, err := x.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	nv, err := n.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if xv.IsNull() || nv.IsNull() {
		return value.Null(value.Number), nil
	}
	digits := int(nv.Float())
	scale := math.Pow(10, float64(digits))
	scaled := xv.Float() * scale
	if round {
		scaled = math.Round(scaled)
	} else {
		scaled = math.Trunc(scaled)
	}
	return value.Num(scaled / scale), nil
}

// Log implements log(x, base). log(x, 1) is undefined and yields null.
type Log struct {
	X, Base Expr
}

// NewLog builds and type-checks log(x, base).
func NewLog(x, base Expr) (*Log, error) {
	if !numeric(x.Type()) || !numeric(base.Type()) {
		return nil, unsupportedType("log requires numeric arguments, got %s and %s", x.Type(), base.Type())
	}
	return &Log{X: x, Base: base}, nil
}

func (l *Log) Type() value.Type { return value.Number }

func (l *Log) Resolve(ctx Context) (value.Value, error) {
	xv, err := l.X.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	basev, err := l.Base.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if xv.IsNull() || basev.IsNull() {
		return value.Null(value.Number), nil
	}
	x, base := xv.Float(), basev.Float()
	if x < 0 || base == 1 || base <= 0 {
		return value.Null(value.Number), nil
	}
	return value.Num(math.Log(x) / math.Log(base)), nil
}

// Power implements power(x, y).
type Power struct {
	X, Y Expr
}

// NewPower builds and type-checks power(x, y).
func NewPower(x, y Expr) (*Power, error) {
	if !numeric(x.Type()) || !numeric(y.Type()) {
		return nil, unsupportedType("power requires numeric arguments, got %s and %s", x.Type(), y.Type())
	}
	return &Power{X: x, Y: y}, nil
}

func (p *Power) Type() value.Type { return value.Number }

func (p *Power) Resolve(ctx Context) (value.Value, error) {
	xv, err := p.X.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	yv, err := p.Y.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if xv.IsNull() || yv.IsNull() {
		return value.Null(value.Number), nil
	}
	return value.Num(math.Pow(xv.Float(), yv.Float())), nil
}

// Mod implements mod(x, y). mod(x, 0) yields null.
type Mod struct {
	X, Y Expr
	typ  value.Type
}

// NewMod builds and type-checks mod(x, y).
func NewMod(x, y Expr) (*Mod, error) {
	if !numeric(x.Type()) || !numeric(y.Type()) {
		return nil, unsupportedType("mod requires numeric arguments, got %s and %s", x.Type(), y.Type())
	}
	return &Mod{X: x, Y: y, typ: value.WidenNumeric(x.Type(), y.Type())}, nil
}

func (m *Mod) Type() value.Type { return m.typ }

func (m *Mod) Resolve(ctx Context) (value.Value, error) {
	xv, err := m.X.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	yv, err := m.Y.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if xv.IsNull() || yv.IsNull() {
		return value.Null(m.typ), nil
	}
	if m.typ == value.Integer {
		yi := yv.AsInt()
		if yi == 0 {
			return value.Null(value.Integer), nil
		}
		return value.Int(xv.AsInt() % yi), nil
	}
	yf := yv.Float()
	if yf == 0 {
		return value.Null(value.Number), nil
	}
	return value.Num(math.Mod(xv.Float(), yf)), nil
}
