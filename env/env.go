// Package env implements the binding environment and statement
// execution: an ordered store of scalar and dataset bindings that
// Statement.Execute populates one assignment at a time.
package env

import (
	"github.com/insee-trevas/vtlengine/dataset"
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/value"
	"github.com/insee-trevas/vtlengine/verrors"
)

// binding is one named result, either a resolved scalar value or a
// dataset-producing expression kept lazy until referenced.
type binding struct {
	name      string
	isDataset bool
	scalar    value.Value
	ds        *dataset.Expr
}

// Environment is an ordered-insertion store of scalar and dataset
// bindings, implementing both expr.Lookup and dataset.Lookup so scalar
// and dataset expressions can resolve references against the same
// store.
type Environment struct {
	order    []string
	bindings map[string]*binding
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{bindings: make(map[string]*binding)}
}

// LookupScalar implements expr.Lookup.
func (e *Environment) LookupScalar(name string) (value.Value, error) {
	b, ok := e.bindings[name]
	if !ok {
		return value.Value{}, verrors.New(verrors.UndefinedReference, "undefined reference: %q", name)
	}
	if b.isDataset {
		return value.Value{}, verrors.New(verrors.UndefinedReference, "%q is a dataset, not a scalar", name)
	}
	return b.scalar, nil
}

// LookupDataset implements dataset.Lookup.
func (e *Environment) LookupDataset(name string) (*dataset.Dataset, error) {
	b, ok := e.bindings[name]
	if !ok {
		return nil, verrors.New(verrors.UndefinedReference, "undefined reference: %q", name)
	}
	if !b.isDataset {
		return nil, verrors.New(verrors.UndefinedReference, "%q is a scalar, not a dataset", name)
	}
	return (*b.ds).Resolve()
}

// Names returns bound names in insertion order.
func (e *Environment) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// BindScalar stores a resolved scalar value under name, overwriting any
// prior binding of that name; re-assignment is allowed, only insertion
// order is tracked, not single-assignment.
func (e *Environment) BindScalar(name string, v value.Value) {
	e.setBinding(name, &binding{name: name, scalar: v})
}

// BindDataset stores a dataset expression under name. The expression is
// kept lazy: LookupDataset resolves it fresh on every reference, so a
// bound dataset stays restartable.
func (e *Environment) BindDataset(name string, ds dataset.Expr) {
	e.setBinding(name, &binding{name: name, isDataset: true, ds: &ds})
}

func (e *Environment) setBinding(name string, b *binding) {
	if _, exists := e.bindings[name]; !exists {
		e.order = append(e.order, name)
	}
	e.bindings[name] = b
}

// Statement is one top-level assignment: name := expression, where
// Expr is exactly one of ScalarExpr or DatasetExpr.
type Statement struct {
	Name        string
	ScalarExpr  expr.Expr
	DatasetExpr dataset.Expr
}

// Execute resolves a statement's expression and binds its result into
// env. An error aborts only this statement; prior bindings in env are
// left intact.
func Execute(env *Environment, stmt Statement) error {
	switch {
	case stmt.ScalarExpr != nil:
		v, err := stmt.ScalarExpr.Resolve(expr.Empty(env))
		if err != nil {
			return err
		}
		env.BindScalar(stmt.Name, v)
		return nil
	case stmt.DatasetExpr != nil:
		// Validate eagerly (structure + a trial resolve) so a malformed
		// statement surfaces its error at execution time rather than on
		// first reference.
		if _, err := stmt.DatasetExpr.Resolve(); err != nil {
			return err
		}
		env.BindDataset(stmt.Name, stmt.DatasetExpr)
		return nil
	default:
		return verrors.New(verrors.InvalidArgument, "statement %q has no expression", stmt.Name)
	}
}
