package dataset

import (
	"github.com/insee-trevas/vtlengine/expr"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// CalcAssignment defines one new or replaced component.
type CalcAssignment struct {
	Name string
	Expr expr.Expr
	Role structure.Role // defaults to Measure if unset by the caller's builder
}

// Calc implements the calc operator. A name colliding with an existing
// component requires a matching role and replaces the prior
// component in place; a new name is appended as a new component.
type Calc struct {
	Child       Expr
	Assignments []CalcAssignment
	Env         expr.Lookup
	resultS     structure.DataStructure
	// targets[i] is the index in resultS.Components that Assignments[i]
	// writes into.
	targets []int
}

// NewCalc builds a calc operator.
func NewCalc(child Expr, assignments []CalcAssignment, env expr.Lookup) (*Calc, error) {
	s := child.Structure()
	components := append([]structure.Component{}, s.Components...)
	index := make(map[string]int, len(components))
	for i, c := range components {
		index[c.Name] = i
	}

	targets := make([]int, len(assignments))
	for i, a := range assignments {
		newComp := structure.Component{Name: a.Name, Type: a.Expr.Type(), Role: a.Role}
		if idx, ok := index[a.Name]; ok {
			if components[idx].Role != a.Role {
				return nil, invalidArg("calc: %q already exists with role %s, cannot replace with role %s", a.Name, components[idx].Role, a.Role)
			}
			components[idx] = newComp
			targets[i] = idx
		} else {
			components = append(components, newComp)
			index[a.Name] = len(components) - 1
			targets[i] = len(components) - 1
		}
	}

	resultS, err := structure.New(components...)
	if err != nil {
		return nil, invalidArg("calc: %v", err)
	}
	return &Calc{Child: child, Assignments: assignments, Env: env, resultS: resultS, targets: targets}, nil
}

func (c *Calc) Structure() structure.DataStructure { return c.resultS }

func (c *Calc) Resolve() (*Dataset, error) {
	childDS, err := c.Child.Resolve()
	if err != nil {
		return nil, err
	}
	result := c.resultS
	childNames := len(childDS.Structure.Components)
	env := c.Env
	fn := func(dp structure.DataPoint) (structure.DataPoint, bool, error) {
		vals := make([]value.Value, len(result.Components))
		for i := 0; i < childNames; i++ {
			vals[i] = dp.At(i)
		}
		for i, a := range c.Assignments {
			v, err := a.Expr.Resolve(expr.WithPoint(dp, env))
			if err != nil {
				return structure.DataPoint{}, false, err
			}
			vals[c.targets[i]] = v
		}
		out, err := structure.NewDataPoint(result, vals)
		if err != nil {
			return structure.DataPoint{}, false, err
		}
		return out, true, nil
	}
	return mapDataset(result, childDS, fn), nil
}
