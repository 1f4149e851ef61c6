// Package dataset implements the Dataset abstraction and the relational
// dataset operators: projection, rename, filter, calc, join, aggregate,
// union and set operators, over a schema-carrying, lazily-iterated row
// source.
package dataset

import (
	"github.com/insee-trevas/vtlengine/structure"
)

// IterState names the three observable states a single iteration of a
// Dataset can be in. Dataset.Structure is fixed before any iteration
// starts; an Iterator moves Defined -> Iterating -> Terminal. Multiple
// concurrent iterators over the same Dataset are independent.
type IterState int

const (
	Defined IterState = iota
	Iterating
	Terminal
)

// Iterator is a single pass over a Dataset's rows.
type Iterator interface {
	State() IterState
	// Next returns the next data point, or ok=false when exhausted.
	Next() (structure.DataPoint, bool, error)
}

// Dataset is a DataStructure plus a lazy, restartable row source. Calling
// NewIterator twice produces two independent iterations.
type Dataset struct {
	Structure structure.DataStructure
	produce   func() Iterator
}

// New builds a Dataset from a structure and a producer of fresh
// iterators.
func New(s structure.DataStructure, produce func() Iterator) *Dataset {
	return &Dataset{Structure: s, produce: produce}
}

// NewIterator starts a fresh, independent iteration.
func (d *Dataset) NewIterator() Iterator { return d.produce() }

// Materialize drains one full iteration into a slice. It is a terminal
// consumer; call it again to get an independent pass (restartability).
func (d *Dataset) Materialize() ([]structure.DataPoint, error) {
	it := d.NewIterator()
	var out []structure.DataPoint
	for {
		dp, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, dp)
	}
}

// FromRows builds a Dataset backed by an in-memory slice of data points,
// restartable because each NewIterator call walks its own index into the
// shared (immutable) slice.
func FromRows(s structure.DataStructure, rows []structure.DataPoint) *Dataset {
	return New(s, func() Iterator {
		return &sliceIterator{rows: rows}
	})
}

type sliceIterator struct {
	rows  []structure.DataPoint
	pos   int
	state IterState
}

func (it *sliceIterator) State() IterState { return it.state }

func (it *sliceIterator) Next() (structure.DataPoint, bool, error) {
	if it.pos >= len(it.rows) {
		it.state = Terminal
		return structure.DataPoint{}, false, nil
	}
	it.state = Iterating
	dp := it.rows[it.pos]
	it.pos++
	return dp, true, nil
}

// mapIterator lazily transforms or filters an underlying iterator,
// backing the row-wise operators (projection, rename, filter, calc)
// without materializing the child.
type mapIterator struct {
	child Iterator
	fn    func(structure.DataPoint) (structure.DataPoint, bool, error)
	state IterState
}

func (it *mapIterator) State() IterState { return it.state }

func (it *mapIterator) Next() (structure.DataPoint, bool, error) {
	for {
		dp, ok, err := it.child.Next()
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		if !ok {
			it.state = Terminal
			return structure.DataPoint{}, false, nil
		}
		it.state = Iterating
		out, keep, err := it.fn(dp)
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		if keep {
			return out, true, nil
		}
	}
}

// mapDataset builds a Dataset whose rows lazily derive from child's rows
// via fn, which returns (transformed point, keep, error).
func mapDataset(s structure.DataStructure, child *Dataset, fn func(structure.DataPoint) (structure.DataPoint, bool, error)) *Dataset {
	return New(s, func() Iterator {
		return &mapIterator{child: child.NewIterator(), fn: fn}
	})
}
