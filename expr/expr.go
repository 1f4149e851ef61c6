// Package expr implements the resolvable scalar expression abstraction:
// a typed expression tree node that computes a scalar value from a
// data-point context. Every scalar operator is a variant of Expr.
package expr

import (
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// Lookup resolves a bound scalar identifier against the ambient
// environment. It is satisfied by env.Environment; kept as an interface
// here so expr does not depend on env (which depends on expr and dataset).
type Lookup interface {
	LookupScalar(name string) (value.Value, error)
}

// Context is the data-point context a ResolvableExpression resolves
// against. Point is nil for the empty context used by constants and
// top-level identifier lookups; it is set for row-wise operators
// evaluating inside a dataset's data-point stream.
type Context struct {
	Point *structure.DataPoint
	Env   Lookup
}

// Empty builds a context with no data point, for scalar top-level
// expressions.
func Empty(env Lookup) Context {
	return Context{Env: env}
}

// WithPoint builds a context carrying the given data point, for row-wise
// operators.
func WithPoint(point structure.DataPoint, env Lookup) Context {
	return Context{Point: &point, Env: env}
}

// Expr is the single polymorphic contract every scalar operator node
// implements: a declared result type, and a resolver that computes a
// value from a Context.
type Expr interface {
	Type() value.Type
	Resolve(ctx Context) (value.Value, error)
}

// Constant is a literal value carrying its own type tag. Construction
// never fails.
type Constant struct {
	val value.Value
}

// NewConstant builds a constant expression.
func NewConstant(v value.Value) *Constant { return &Constant{val: v} }

func (c *Constant) Type() value.Type { return c.val.Type }

func (c *Constant) Resolve(Context) (value.Value, error) { return c.val, nil }

// Identifier looks up a scalar binding by name in the ambient
// environment.
type Identifier struct {
	Name string
	typ  value.Type
}

// NewIdentifier builds an identifier expression. declaredType is the type
// the binding was resolved to have when the expression tree was built;
// the parser (or, in this repo, lang) is responsible for having looked
// that up already, since construction must not itself consult the
// environment (the environment may not be stable until resolve time).
func NewIdentifier(name string, declaredType value.Type) *Identifier {
	return &Identifier{Name: name, typ: declaredType}
}

func (i *Identifier) Type() value.Type { return i.typ }

func (i *Identifier) Resolve(ctx Context) (value.Value, error) {
	if ctx.Env == nil {
		return value.Value{}, undefinedRef(i.Name)
	}
	return ctx.Env.LookupScalar(i.Name)
}

// Column references a named component of the current row. Unlike
// Identifier, it resolves against ctx.Point, not the environment.
type Column struct {
	Name string
	typ  value.Type
}

// NewColumn builds a column reference against a known structure,
// validating that the component exists.
func NewColumn(s structure.DataStructure, name string) (*Column, error) {
	c, ok := s.Component(name)
	if !ok {
		return nil, unsupportedType("column %q not found in structure", name)
	}
	return &Column{Name: name, typ: c.Type}, nil
}

func (c *Column) Type() value.Type { return c.typ }

func (c *Column) Resolve(ctx Context) (value.Value, error) {
	if ctx.Point == nil {
		return value.Value{}, unsupportedType("column %q referenced outside a row context", c.Name)
	}
	v, ok := ctx.Point.Get(c.Name)
	if !ok {
		return value.Value{}, unsupportedType("column %q not found in row", c.Name)
	}
	return v, nil
}
