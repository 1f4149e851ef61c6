package dataset

import (
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// Projection implements keep/drop: the new structure is the named
// subset of components, or its complement. Identifiers may not be
// dropped from the resulting structure.
type Projection struct {
	Child   Expr
	names   map[string]bool
	keep    bool // true = Keep(names), false = Drop(names)
	resultS structure.DataStructure
}

// NewKeep builds a projection keeping exactly the named components.
func NewKeep(child Expr, names []string) (*Projection, error) {
	return newProjection(child, names, true)
}

// NewDrop builds a projection dropping the named components.
func NewDrop(child Expr, names []string) (*Projection, error) {
	return newProjection(child, names, false)
}

func newProjection(child Expr, names []string, keep bool) (*Projection, error) {
	s := child.Structure()
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if s.Index(n) < 0 {
			return nil, invalidArg("projection: component %q not found in structure", n)
		}
		set[n] = true
	}

	var kept []structure.Component
	for _, c := range s.Components {
		included := set[c.Name]
		if !keep {
			included = !included
		}
		if included {
			kept = append(kept, c)
		} else if c.Role == structure.Identifier {
			return nil, invalidArg("projection: identifier %q may not be dropped", c.Name)
		}
	}

	resultS, err := structure.New(kept...)
	if err != nil {
		return nil, invalidArg("projection: %v", err)
	}
	return &Projection{Child: child, names: set, keep: keep, resultS: resultS}, nil
}

func (p *Projection) Structure() structure.DataStructure { return p.resultS }

func (p *Projection) Resolve() (*Dataset, error) {
	childDS, err := p.Child.Resolve()
	if err != nil {
		return nil, err
	}
	result := p.resultS
	fn := func(dp structure.DataPoint) (structure.DataPoint, bool, error) {
		vals := make([]value.Value, len(result.Components))
		for i, c := range result.Components {
			v, _ := dp.Get(c.Name)
			vals[i] = v
		}
		out, err := structure.NewDataPoint(result, vals)
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		return out, true, nil
	}
	return mapDataset(result, childDS, fn), nil
}
