package dataset

import (
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// RenamePair is one old-name -> new-name mapping.
type RenamePair struct {
	Old, New string
}

// Rename implements the rename operator: a partial mapping from old to
// new component names, rejecting collisions with names not being
// renamed.
type Rename struct {
	Child   Expr
	resultS structure.DataStructure
}

// NewRename builds a rename operator.
func NewRename(child Expr, pairs []RenamePair) (*Rename, error) {
	s := child.Structure()
	renamed := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if s.Index(p.Old) < 0 {
			return nil, invalidArg("rename: component %q not found", p.Old)
		}
		renamed[p.Old] = p.New
	}

	finalNames := make(map[string]bool, len(s.Components))
	components := make([]structure.Component, len(s.Components))
	for i, c := range s.Components {
		name := c.Name
		if n, ok := renamed[c.Name]; ok {
			name = n
		}
		if finalNames[name] {
			return nil, invalidArg("rename: resulting name %q collides with an existing component", name)
		}
		finalNames[name] = true
		components[i] = structure.Component{Name: name, Type: c.Type, Role: c.Role}
	}

	resultS, err := structure.New(components...)
	if err != nil {
		return nil, invalidArg("rename: %v", err)
	}
	return &Rename{Child: child, resultS: resultS}, nil
}

func (r *Rename) Structure() structure.DataStructure { return r.resultS }

func (r *Rename) Resolve() (*Dataset, error) {
	childDS, err := r.Child.Resolve()
	if err != nil {
		return nil, err
	}
	result := r.resultS
	fn := func(dp structure.DataPoint) (structure.DataPoint, bool, error) {
		vals := make([]value.Value, len(dp.Values()))
		copy(vals, dp.Values())
		out, err := structure.NewDataPoint(result, vals)
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		return out, true, nil
	}
	return mapDataset(result, childDS, fn), nil
}
