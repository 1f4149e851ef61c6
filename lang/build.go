package lang

import (
	"fmt"
	"strings"

	"github.com/insee-trevas/vtlengine/collab/avro"
	"github.com/insee-trevas/vtlengine/collab/csv"
	"github.com/insee-trevas/vtlengine/collab/parquet"
	"github.com/insee-trevas/vtlengine/dataset"
	"github.com/insee-trevas/vtlengine/env"
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/reduce"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// BuildStatement turns a parsed Statement into an env.Statement, ready
// for env.Execute. e supplies dataset identifier lookups and scalar
// identifier lookups; a scalar identifier must already be bound in e
// when the statement is built, since its type is read from e then.
func BuildStatement(stmt Statement, e *env.Environment) (env.Statement, error) {
	switch {
	case stmt.Dataset != nil:
		ds, err := BuildDataset(stmt.Dataset, e)
		if err != nil {
			return env.Statement{}, err
		}
		return env.Statement{Name: stmt.Name, DatasetExpr: ds}, nil
	default:
		sc, err := BuildScalar(stmt.Scalar, nil, e)
		if err != nil {
			return env.Statement{}, err
		}
		return env.Statement{Name: stmt.Name, ScalarExpr: sc}, nil
	}
}

// --- Dataset building ---

// BuildDataset builds a dataset.Expr from a parsed pipeline.
func BuildDataset(d *DatasetExpr, e *env.Environment) (dataset.Expr, error) {
	cur, err := buildSource(d.Source, e)
	if err != nil {
		return nil, err
	}
	for _, stage := range d.Stages {
		cur, err = buildStage(cur, stage, e)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func buildSource(src Source, e *env.Environment) (dataset.Expr, error) {
	if src.ReadFunc != "" {
		var ds *dataset.Dataset
		var err error
		switch src.ReadFunc {
		case "csv":
			ds, err = csv.ReadFile(src.Path)
		case "avro":
			ds, err = avro.ReadFile(src.Path)
		case "parquet":
			ds, err = parquet.ReadFile(src.Path)
		default:
			return nil, fmt.Errorf("unknown read function %q", src.ReadFunc)
		}
		if err != nil {
			return nil, err
		}
		return dataset.NewConst(ds), nil
	}
	childDS, err := e.LookupDataset(src.Ident)
	if err != nil {
		return nil, err
	}
	return dataset.NewIdentifier(src.Ident, childDS.Structure, e), nil
}

func buildStage(child dataset.Expr, stage Stage, e *env.Environment) (dataset.Expr, error) {
	switch stage.Op {
	case "keep":
		return dataset.NewKeep(child, stage.Names)
	case "drop":
		return dataset.NewDrop(child, stage.Names)
	case "rename":
		pairs := make([]dataset.RenamePair, len(stage.Renames))
		for i, r := range stage.Renames {
			pairs[i] = dataset.RenamePair{Old: r.Old, New: r.New}
		}
		return dataset.NewRename(child, pairs)
	case "filter":
		filterStruct := structureOf(child)
		cond, err := BuildScalar(stage.Cond, &filterStruct, e)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		return dataset.NewFilter(child, cond, e)
	case "calc":
		assigns := make([]dataset.CalcAssignment, len(stage.Assignments))
		s := structureOf(child)
		for i, a := range stage.Assignments {
			ex, err := BuildScalar(a.Expr, &s, e)
			if err != nil {
				return nil, fmt.Errorf("calc: in assignment for %q: %w", a.Name, err)
			}
			assigns[i] = dataset.CalcAssignment{Name: a.Name, Expr: ex, Role: roleOrMeasure(a.Role)}
		}
		return dataset.NewCalc(child, assigns, e)
	case "agg":
		s := structureOf(child)
		assigns := make([]dataset.AggAssignment, len(stage.Assignments))
		for i, a := range stage.Assignments {
			call, ok := a.Expr.(*CallExpr)
			if !ok {
				return nil, fmt.Errorf("agg: assignment for %q must be a reducer call", a.Name)
			}
			r, err := buildReducer(call, s)
			if err != nil {
				return nil, fmt.Errorf("agg: in assignment for %q: %w", a.Name, err)
			}
			assigns[i] = dataset.AggAssignment{Name: a.Name, Reducer: r}
		}
		return dataset.NewAggregate(child, stage.GroupBy, assigns)
	case "join":
		other, err := BuildDataset(stage.Other, e)
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		kind := map[string]dataset.JoinKind{"inner": dataset.Inner, "left": dataset.Left, "full": dataset.Full}[stage.JoinKind]
		return dataset.NewJoin(child, other, kind, nil, nil)
	case "union", "intersect", "minus":
		kind := map[string]dataset.SetOpKind{"union": dataset.Union, "intersect": dataset.Intersect, "minus": dataset.Minus}[stage.Op]
		operands := []dataset.Expr{child}
		for _, o := range stage.Others {
			built, err := BuildDataset(o, e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", stage.Op, err)
			}
			operands = append(operands, built)
		}
		return dataset.NewSetOp(kind, operands...)
	default:
		return nil, fmt.Errorf("unknown operator %q", stage.Op)
	}
}

func structureOf(d dataset.Expr) structure.DataStructure { return d.Structure() }

func roleOrMeasure(role string) structure.Role {
	switch role {
	case "identifier":
		return structure.Identifier
	case "attribute":
		return structure.Attribute
	default:
		return structure.Measure
	}
}

func buildReducer(call *CallExpr, s structure.DataStructure) (reduce.Reducer, error) {
	name := strings.ToLower(call.Name)
	if name == "count" {
		return reduce.Count(), nil
	}
	if len(call.Args) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one argument", name)
	}
	childExpr, err := BuildScalar(call.Args[0], &s, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	switch name {
	case "sum":
		return reduce.Sum(childExpr)
	case "avg":
		return reduce.Avg(childExpr)
	case "median":
		return reduce.Median(childExpr)
	case "min":
		return reduce.Min(childExpr)
	case "max":
		return reduce.Max(childExpr)
	case "stddev_pop":
		return reduce.StddevPop(childExpr)
	case "stddev_samp":
		return reduce.StddevSamp(childExpr)
	case "var_pop":
		return reduce.VarPop(childExpr)
	case "var_samp":
		return reduce.VarSamp(childExpr)
	default:
		return nil, fmt.Errorf("unknown reducer %q", name)
	}
}

// --- Scalar building ---

// BuildScalar builds an expr.Expr from a parsed scalar AST. s is the
// ambient row structure for column references (nil for top-level
// scalar statements); lk resolves bound scalar identifiers.
func BuildScalar(e ScalarExpr, s *structure.DataStructure, lk expr.Lookup) (expr.Expr, error) {
	switch n := e.(type) {
	case *LiteralExpr:
		return buildLiteral(n)
	case *NameExpr:
		if s != nil {
			if _, ok := s.Component(n.Name); ok {
				return expr.NewColumn(*s, n.Name)
			}
		}
		t, err := identifierType(n.Name, lk)
		if err != nil {
			return nil, err
		}
		return expr.NewIdentifier(n.Name, t), nil
	case *UnaryExpr:
		operand, err := BuildScalar(n.Operand, s, lk)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "not":
			return expr.NewNot(operand)
		case "-":
			return expr.NewUnaryArithmetic(expr.Neg, operand)
		default:
			return nil, fmt.Errorf("unknown unary operator %q", n.Op)
		}
	case *BinaryExpr:
		return buildBinary(n, s, lk)
	case *CondExpr:
		cond, err := BuildScalar(n.Cond, s, lk)
		if err != nil {
			return nil, err
		}
		thenE, err := BuildScalar(n.Then, s, lk)
		if err != nil {
			return nil, err
		}
		elseE, err := BuildScalar(n.Else, s, lk)
		if err != nil {
			return nil, err
		}
		return expr.NewConditional(cond, thenE, elseE)
	case *IsNullExpr:
		operand, err := BuildScalar(n.Operand, s, lk)
		if err != nil {
			return nil, err
		}
		return expr.NewIsNull(operand, n.Negate), nil
	case *CallExpr:
		return buildFuncCall(n, s, lk)
	default:
		return nil, fmt.Errorf("unknown scalar expression node %T", e)
	}
}

func buildLiteral(n *LiteralExpr) (expr.Expr, error) {
	switch n.Kind {
	case "int":
		return expr.NewConstant(value.Int(n.Int)), nil
	case "number":
		return expr.NewConstant(value.Num(n.Num)), nil
	case "string":
		return expr.NewConstant(value.Str(n.Str)), nil
	case "bool":
		return expr.NewConstant(value.Bool(n.Bool)), nil
	case "null":
		return expr.NewConstant(value.Null(value.String)), nil
	default:
		return nil, fmt.Errorf("unknown literal kind %q", n.Kind)
	}
}

func identifierType(name string, lk expr.Lookup) (value.Type, error) {
	if lk == nil {
		return 0, fmt.Errorf("identifier %q is not bound", name)
	}
	v, err := lk.LookupScalar(name)
	if err != nil {
		return 0, err
	}
	return v.Type, nil
}

func buildBinary(n *BinaryExpr, s *structure.DataStructure, lk expr.Lookup) (expr.Expr, error) {
	left, err := BuildScalar(n.Left, s, lk)
	if err != nil {
		return nil, err
	}
	right, err := BuildScalar(n.Right, s, lk)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return expr.NewArithmetic(expr.Add, left, right)
	case "-":
		return expr.NewArithmetic(expr.Sub, left, right)
	case "*":
		return expr.NewArithmetic(expr.Mul, left, right)
	case "/":
		return expr.NewArithmetic(expr.Div, left, right)
	case "==":
		return expr.NewComparison(expr.Eq, left, right)
	case "!=":
		return expr.NewComparison(expr.Neq, left, right)
	case "<":
		return expr.NewComparison(expr.Lt, left, right)
	case ">":
		return expr.NewComparison(expr.Gt, left, right)
	case "<=":
		return expr.NewComparison(expr.Lte, left, right)
	case ">=":
		return expr.NewComparison(expr.Gte, left, right)
	case "and":
		return expr.NewBooleanBinary(expr.And, left, right)
	case "or":
		return expr.NewBooleanBinary(expr.Or, left, right)
	case "xor":
		return expr.NewBooleanBinary(expr.Xor, left, right)
	default:
		return nil, fmt.Errorf("unknown binary operator %q", n.Op)
	}
}

func buildFuncCall(n *CallExpr, s *structure.DataStructure, lk expr.Lookup) (expr.Expr, error) {
	args := make([]expr.Expr, len(n.Args))
	for i, a := range n.Args {
		built, err := BuildScalar(a, s, lk)
		if err != nil {
			return nil, err
		}
		args[i] = built
	}
	name := strings.ToLower(n.Name)
	one := func() (expr.Expr, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: expected exactly one argument", name)
		}
		return args[0], nil
	}
	switch name {
	case "trim":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewStringFunc1(expr.Trim, a)
	case "ltrim":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewStringFunc1(expr.Ltrim, a)
	case "rtrim":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewStringFunc1(expr.Rtrim, a)
	case "upper":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewStringFunc1(expr.Upper, a)
	case "lower":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewStringFunc1(expr.Lower, a)
	case "length":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewLength(a)
	case "substr":
		if len(args) < 1 {
			return nil, fmt.Errorf("substr: expected at least one argument")
		}
		var start, length expr.Expr
		extra := []expr.Expr{}
		if len(args) >= 2 {
			start = args[1]
		}
		if len(args) >= 3 {
			length = args[2]
		}
		if len(args) > 3 {
			extra = args[3:]
		}
		return expr.NewSubstr(args[0], start, length, extra)
	case "abs":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Abs, a)
	case "ceil":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Ceil, a)
	case "floor":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Floor, a)
	case "sqrt":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Sqrt, a)
	case "ln":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Ln, a)
	case "exp":
		a, err := one()
		if err != nil {
			return nil, err
		}
		return expr.NewNumericFunc1(expr.Exp, a)
	case "round":
		switch len(args) {
		case 1:
			return expr.NewRound(args[0], expr.NewConstant(value.Int(0)))
		case 2:
			return expr.NewRound(args[0], args[1])
		default:
			return nil, fmt.Errorf("round: expected one or two arguments")
		}
	case "trunc":
		switch len(args) {
		case 1:
			return expr.NewTrunc(args[0], expr.NewConstant(value.Int(0)))
		case 2:
			return expr.NewTrunc(args[0], args[1])
		default:
			return nil, fmt.Errorf("trunc: expected one or two arguments")
		}
	case "log":
		if len(args) != 2 {
			return nil, fmt.Errorf("log: expected exactly two arguments")
		}
		return expr.NewLog(args[0], args[1])
	case "power":
		if len(args) != 2 {
			return nil, fmt.Errorf("power: expected exactly two arguments")
		}
		return expr.NewPower(args[0], args[1])
	case "mod":
		if len(args) != 2 {
			return nil, fmt.Errorf("mod: expected exactly two arguments")
		}
		return expr.NewMod(args[0], args[1])
	default:
		return nil, fmt.Errorf("unknown function %q", name)
	}
}
