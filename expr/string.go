package expr

import (
	"strings"

	"github.com/insee-trevas/vtlengine/value"
)

// StringUnaryOp is one of the single-argument string transform functions.
type StringUnaryOp int

const (
	Trim StringUnaryOp = iota
	Ltrim
	Rtrim
	Upper
	Lower
)

func (op StringUnaryOp) String() string {
	switch op {
	case Trim:
		return "trim"
	case Ltrim:
		return "ltrim"
	case Rtrim:
		return "rtrim"
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return "?"
	}
}

const asciiSpace = " \t\n\r"

// StringFunc1 is a unary string function: trim/ltrim/rtrim/upper/lower.
type StringFunc1 struct {
	Op      StringUnaryOp
	Operand Expr
}

// NewStringFunc1 builds and type-checks a unary string function call.
func NewStringFunc1(op StringUnaryOp, operand Expr) (*StringFunc1, error) {
	if operand.Type() != value.String {
		return nil, unsupportedType("%s requires a string operand, got %s", op, operand.Type())
	}
	return &StringFunc1{Op: op, Operand: operand}, nil
}

func (f *StringFunc1) Type() value.Type { return value.String }

func (f *StringFunc1) Resolve(ctx Context) (value.Value, error) {
	v, err := f.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return value.Null(value.String), nil
	}
	s := v.AsString()
	switch f.Op {
	case Trim:
		return value.Str(strings.Trim(s, asciiSpace)), nil
	case Ltrim:
		return value.Str(strings.TrimLeft(s, asciiSpace)), nil
	case Rtrim:
		return value.Str(strings.TrimRight(s, asciiSpace)), nil
	case Upper:
		return value.Str(strings.ToUpper(s)), nil
	case Lower:
		return value.Str(strings.ToLower(s)), nil
	default:
		return value.Value{}, unsupportedOp("unknown string function %q", f.Op)
	}
}

// Length returns the Integer count of Unicode code points in a string,
// not bytes.
type Length struct {
	Operand Expr
}

// NewLength builds and type-checks length(s).
func NewLength(operand Expr) (*Length, error) {
	if operand.Type() != value.String {
		return nil, unsupportedType("length requires a string operand, got %s", operand.Type())
	}
	return &Length{Operand: operand}, nil
}

func (l *Length) Type() value.Type { return value.Integer }

func (l *Length) Resolve(ctx Context) (value.Value, error) {
	v, err := l.Operand.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return value.Null(value.Integer), nil
	}
	return value.Int(int64(len([]rune(v.AsString())))), nil
}

// Substr implements substr(s), substr(s, start) and substr(s, start,
// length), 0-based, clamped to [0, len(s)], operating on Unicode code
// points rather than bytes (0-based indexing is a deliberate choice —
// see DESIGN.md Open Questions).
type Substr struct {
	Str, Start, Length Expr // Start and Length may be nil
}

// NewSubstr builds and type-checks a substr call. extra holds any
// positional arguments beyond (start, length); passing any causes an
// UnsupportedOperation error reporting the offending call literal.
func NewSubstr(str Expr, start, length Expr, extra []Expr) (*Substr, error) {
	if str.Type() != value.String {
		return nil, unsupportedType("substr requires a string first argument, got %s", str.Type())
	}
	n := len(extra)
	if start != nil {
		n++
	}
	if length != nil {
		n++
	}
	if len(extra) > 0 {
		allArgs := make([]Expr, 0, n+1)
		allArgs = append(allArgs, str)
		if start != nil {
			allArgs = append(allArgs, start)
		}
		if length != nil {
			allArgs = append(allArgs, length)
		}
		allArgs = append(allArgs, extra...)
		literal := renderCall("substr", allArgs)
		return nil, unsupportedOp("too many args (%d) for: %s", n, literal)
	}
	if start != nil && !numeric(start.Type()) {
		return nil, unsupportedType("substr start must be numeric, got %s", start.Type())
	}
	if length != nil && !numeric(length.Type()) {
		return nil, unsupportedType("substr length must be numeric, got %s", length.Type())
	}
	return &Substr{Str: str, Start: start, Length: length}, nil
}

func (s *Substr) Type() value.Type { return value.String }

func (s *Substr) Resolve(ctx Context) (value.Value, error) {
	sv, err := s.Str.Resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	if sv.IsNull() {
		return value.Null(value.String), nil
	}
	runes := []rune(sv.AsString())

	start := 0
	if s.Start != nil {
		startV, err := s.Start.Resolve(ctx)
		if err != nil {
			return value.Value{}, err
		}
		if startV.IsNull() {
			return value.Null(value.String), nil
		}
		start = int(startV.Float())
	}
	start = clamp(start, 0, len(runes))

	length := len(runes) - start
	if s.Length != nil {
		lengthV, err := s.Length.Resolve(ctx)
		if err != nil {
			return value.Value{}, err
		}
		if lengthV.IsNull() {
			return value.Null(value.String), nil
		}
		length = int(lengthV.Float())
		if length < 0 {
			length = 0
		}
	}
	end := clamp(start+length, start, len(runes))

	return value.Str(string(runes[start:end])), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
