package dataset

import (
	"github.com/insee-trevas/vtlengine/structure"
)

// SetOpKind selects union, intersect, or minus.
type SetOpKind int

const (
	Union SetOpKind = iota
	Intersect
	Minus
)

// SetOp implements union/intersect/minus over two or more operands that
// must share an identical structure (role/type/name equality,
// order-independent). Union concatenates rows without deduplication;
// intersect and minus compare rows by value and so dedupe their output.
type SetOp struct {
	Children []Expr
	Kind     SetOpKind
	resultS  structure.DataStructure
}

// NewSetOp builds a set operator. All children must have equal
// structures; Minus keeps the first operand's rows that appear in none
// of the later operands.
func NewSetOp(kind SetOpKind, children ...Expr) (*SetOp, error) {
	if len(children) < 2 {
		return nil, invalidArg("set operator requires at least two operands")
	}
	s0 := children[0].Structure()
	for _, c := range children[1:] {
		if !c.Structure().Equal(s0) {
			return nil, structureMismatch("set operator: operand structures differ")
		}
	}
	return &SetOp{Children: children, Kind: kind, resultS: s0}, nil
}

func (s *SetOp) Structure() structure.DataStructure { return s.resultS }

// rowKey keys dp by component name in names order rather than by dp's own
// positional Values(), since NewSetOp only requires operand structures to
// be Equal (order-independent) — two logically identical rows from
// differently-ordered-but-equal structures must still collide. Used by
// intersect and minus, which compare rows by value; union does not key
// rows at all.
func rowKey(dp structure.DataPoint, names []string) string {
	var b []byte
	for _, n := range names {
		v, _ := dp.Get(n)
		b = append(b, []byte(v.String())...)
		b = append(b, 0)
	}
	return string(b)
}

func (s *SetOp) Resolve() (*Dataset, error) {
	result := s.resultS
	children := s.Children
	kind := s.Kind
	names := result.Names()

	build := func() Iterator {
		all := make([][]structure.DataPoint, len(children))
		for i, c := range children {
			ds, err := c.Resolve()
			if err != nil {
				return &errIterator{err: err}
			}
			rows, err := ds.Materialize()
			if err != nil {
				return &errIterator{err: err}
			}
			all[i] = rows
		}

		var out []structure.DataPoint
		switch kind {
		case Union:
			for _, rows := range all {
				out = append(out, rows...)
			}
		case Intersect:
			counts := make(map[string]int)
			for _, dp := range all[0] {
				counts[rowKey(dp, names)] = 1
			}
			for _, rows := range all[1:] {
				present := make(map[string]bool)
				for _, dp := range rows {
					present[rowKey(dp, names)] = true
				}
				for k, c := range counts {
					if c > 0 && !present[k] {
						counts[k] = 0
					}
				}
			}
			seen := make(map[string]bool)
			for _, dp := range all[0] {
				k := rowKey(dp, names)
				if counts[k] > 0 && !seen[k] {
					seen[k] = true
					out = append(out, dp)
				}
			}
		case Minus:
			excluded := make(map[string]bool)
			for _, rows := range all[1:] {
				for _, dp := range rows {
					excluded[rowKey(dp, names)] = true
				}
			}
			seen := make(map[string]bool)
			for _, dp := range all[0] {
				k := rowKey(dp, names)
				if excluded[k] || seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, dp)
			}
		}
		return &sliceIterator{rows: out}
	}

	return New(result, build), nil
}
