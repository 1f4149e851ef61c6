// Package lang is a thin textual front end over the expr/dataset/env
// core: a lexer and a recursive-descent parser that execute one
// statement at a time against an env.Environment, with dataset operator
// chains built as pipe-chained stages over a source, alongside ordinary
// scalar expressions. It is a convenience surface for cmd/vtlrun and
// tests, not part of the evaluator core: any caller can build
// expr.Expr/dataset.Expr trees directly without going through this
// package.
package lang

// ScalarExpr is the parsed AST for a scalar expression, resolved into
// an expr.Expr by a builder that knows the ambient row structure (if
// any) and environment.
type ScalarExpr interface{ scalarExprNode() }

type LiteralExpr struct {
	Kind  string // "int", "number", "string", "bool", "null"
	Int   int64
	Num   float64
	Str   string
	Bool  bool
	Null  string // declared type name, for Kind == "null"
}

func (*LiteralExpr) scalarExprNode() {}

// NameExpr references a column (if one exists in the ambient row
// structure) or otherwise a bound scalar identifier.
type NameExpr struct{ Name string }

func (*NameExpr) scalarExprNode() {}

type BinaryExpr struct {
	Op          string
	Left, Right ScalarExpr
}

func (*BinaryExpr) scalarExprNode() {}

type UnaryExpr struct {
	Op      string
	Operand ScalarExpr
}

func (*UnaryExpr) scalarExprNode() {}

type CondExpr struct{ Cond, Then, Else ScalarExpr }

func (*CondExpr) scalarExprNode() {}

type IsNullExpr struct {
	Operand ScalarExpr
	Negate  bool
}

func (*IsNullExpr) scalarExprNode() {}

type CallExpr struct {
	Name string
	Args []ScalarExpr
}

func (*CallExpr) scalarExprNode() {}

// DatasetExpr is the parsed AST for a dataset pipeline: a source
// followed by zero or more operator stages.
type DatasetExpr struct {
	Source Source
	Stages []Stage
}

// Source is either a bound dataset identifier or a read call
// (read_csv/read_avro/read_parquet).
type Source struct {
	Ident    string // set when reading a prior binding
	ReadFunc string // set when reading a file ("csv", "avro", "parquet")
	Path     string
}

// Stage is one pipe-delimited operator application.
type Stage struct {
	Op          string // "keep", "drop", "rename", "filter", "calc", "agg", "join", "union", "intersect", "minus"
	Names       []string
	Renames     []RenamePair
	Cond        ScalarExpr
	Assignments []CalcAssign
	GroupBy     []string
	JoinKind    string // "inner", "left", "full"
	Other       *DatasetExpr
	Others      []*DatasetExpr // union/intersect/minus extra operands
}

type RenamePair struct{ Old, New string }

type CalcAssign struct {
	Name string
	Expr ScalarExpr
	Role string // "", "identifier", "measure", "attribute"
}

// Statement is one top-level "name := expr ;" line.
type Statement struct {
	Name    string
	Scalar  ScalarExpr
	Dataset *DatasetExpr
}
