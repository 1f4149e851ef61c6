// Package reduce implements the aggregation reducers: a four-part
// associative fold (seed, accumulate, combine, finish) that is
// type-directed on its input expression's scalar type.
package reduce

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// Reducer is the non-generic contract a statement's aggregate operator
// dispatches through. The accumulator is carried as `any` so reducers of
// different internal accumulator shapes (a running sum vs. a collected
// slice for median) can share one interface; each constructor below
// returns a Reducer backed by a type-parameterized implementation.
type Reducer interface {
	// Type is the reducer's declared result type.
	Type() value.Type
	// Seed returns a fresh accumulator.
	Seed() any
	// Accumulate folds one data point into acc.
	Accumulate(acc any, point structure.DataPoint) (any, error)
	// Combine merges two accumulators from disjoint partitions. Must be
	// associative with Seed as identity, so that
	// Combine(reduce(G1), reduce(G2)) == reduce(G1 ∪ G2).
	Combine(a, b any) any
	// Finish converts an accumulator into the reducer's result value.
	Finish(acc any) value.Value
}

// generic implements Reducer for an accumulator of type A, wrapping a
// child expression whose resolved value is folded via step. Reducers
// with no child expression (count) leave child nil and step ignores the
// value argument.
type generic[A any] struct {
	resultType value.Type
	child      expr.Expr
	seed       func() A
	step       func(acc A, v value.Value) A
	combine    func(a, b A) A
	finish     func(acc A) value.Value
}

func (g *generic[A]) Type() value.Type { return g.resultType }

func (g *generic[A]) Seed() any { return g.seed() }

func (g *generic[A]) Accumulate(acc any, point structure.DataPoint) (any, error) {
	a := acc.(A)
	var v value.Value
	if g.child != nil {
		ctx := expr.WithPoint(point, nil)
		var err error
		v, err = g.child.Resolve(ctx)
		if err != nil {
			return nil, err
		}
	}
	return g.step(a, v), nil
}

func (g *generic[A]) Combine(a, b any) any {
	return g.combine(a.(A), b.(A))
}

func (g *generic[A]) Finish(acc any) value.Value {
	return g.finish(acc.(A))
}
