package dataset

import (
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/verrors"
)

// Lookup resolves a bound dataset identifier against the ambient
// environment. Satisfied by env.Environment.
type Lookup interface {
	LookupDataset(name string) (*Dataset, error)
}

// Expr is the dataset-producing counterpart to expr.Expr: its declared
// result type is a DataStructure rather than a scalar type, and
// resolving it yields a Dataset rather than a scalar Value.
type Expr interface {
	Structure() structure.DataStructure
	Resolve() (*Dataset, error)
}

// Const wraps an already-resolved Dataset as an Expr, used internally by
// operators to thread a child's resolved dataset and by callers that
// already have a Dataset in hand.
type Const struct {
	ds *Dataset
}

// NewConst builds a constant dataset expression.
func NewConst(ds *Dataset) *Const { return &Const{ds: ds} }

func (c *Const) Structure() structure.DataStructure { return c.ds.Structure }

func (c *Const) Resolve() (*Dataset, error) { return c.ds, nil }

// Identifier looks up a bound dataset by name in the ambient environment.
type Identifier struct {
	Name   string
	typ    structure.DataStructure
	lookup Lookup
}

// NewIdentifier builds a dataset identifier expression. declaredStructure
// is the structure the binding was known to have when the expression
// tree was built.
func NewIdentifier(name string, declaredStructure structure.DataStructure, lookup Lookup) *Identifier {
	return &Identifier{Name: name, typ: declaredStructure, lookup: lookup}
}

func (i *Identifier) Structure() structure.DataStructure { return i.typ }

func (i *Identifier) Resolve() (*Dataset, error) {
	if i.lookup == nil {
		return nil, verrors.New(verrors.UndefinedReference, "identifier %q is not bound", i.Name)
	}
	return i.lookup.LookupDataset(i.Name)
}
