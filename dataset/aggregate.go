package dataset

import (
	"strings"

	"github.com/insee-trevas/vtlengine/reduce"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// AggAssignment names one output measure and the reducer that computes it.
type AggAssignment struct {
	Name    string
	Reducer reduce.Reducer
}

// Aggregate implements the aggregate operator: group rows by a subset
// of identifiers, fold each named measure's reducer over every group,
// one output row per group.
type Aggregate struct {
	Child       Expr
	GroupBy     []string
	Assignments []AggAssignment
	resultS     structure.DataStructure
}

// NewAggregate builds an aggregate operator. groupBy must name existing
// identifier components of child; the resulting structure is those
// identifiers followed by one measure per assignment.
func NewAggregate(child Expr, groupBy []string, assignments []AggAssignment) (*Aggregate, error) {
	s := child.Structure()
	components := make([]structure.Component, 0, len(groupBy)+len(assignments))
	for _, n := range groupBy {
		c, ok := s.Component(n)
		if !ok {
			return nil, invalidArg("aggregate: group-by component %q not found", n)
		}
		if c.Role != structure.Identifier {
			return nil, invalidArg("aggregate: group-by component %q is not an identifier", n)
		}
		components = append(components, c)
	}
	names := make(map[string]bool, len(components))
	for _, c := range components {
		names[c.Name] = true
	}
	for _, a := range assignments {
		if names[a.Name] {
			return nil, invalidArg("aggregate: measure %q collides with a group-by identifier", a.Name)
		}
		names[a.Name] = true
		components = append(components, structure.Component{Name: a.Name, Type: a.Reducer.Type(), Role: structure.Measure})
	}

	resultS, err := structure.New(components...)
	if err != nil {
		return nil, invalidArg("aggregate: %v", err)
	}
	return &Aggregate{Child: child, GroupBy: groupBy, Assignments: assignments, resultS: resultS}, nil
}

func (a *Aggregate) Structure() structure.DataStructure { return a.resultS }

func groupKey(dp structure.DataPoint, groupBy []string) string {
	var sb strings.Builder
	for _, n := range groupBy {
		v, _ := dp.Get(n)
		sb.WriteString(v.String())
		sb.WriteByte(0)
	}
	return sb.String()
}

func (a *Aggregate) Resolve() (*Dataset, error) {
	childDS, err := a.Child.Resolve()
	if err != nil {
		return nil, err
	}
	result := a.resultS
	groupBy := a.GroupBy
	assignments := a.Assignments

	build := func() Iterator {
		rows, err := childDS.Materialize()
		if err != nil {
			return &errIterator{err: err}
		}

		type group struct {
			idVals []value.Value
			accs   []any
		}
		order := make([]string, 0)
		groups := make(map[string]*group)

		for _, dp := range rows {
			key := groupKey(dp, groupBy)
			g, ok := groups[key]
			if !ok {
				idVals := make([]value.Value, len(groupBy))
				for i, n := range groupBy {
					idVals[i], _ = dp.Get(n)
				}
				accs := make([]any, len(assignments))
				for i, asg := range assignments {
					accs[i] = asg.Reducer.Seed()
				}
				g = &group{idVals: idVals, accs: accs}
				groups[key] = g
				order = append(order, key)
			}
			for i, asg := range assignments {
				acc, err := asg.Reducer.Accumulate(g.accs[i], dp)
				if err != nil {
					return &errIterator{err: err}
				}
				g.accs[i] = acc
			}
		}

		out := make([]structure.DataPoint, 0, len(order))
		for _, key := range order {
			g := groups[key]
			vals := make([]value.Value, len(result.Components))
			copy(vals, g.idVals)
			for i, asg := range assignments {
				vals[len(groupBy)+i] = asg.Reducer.Finish(g.accs[i])
			}
			dp, err := structure.NewDataPoint(result, vals)
			if err != nil {
				return &errIterator{err: err}
			}
			out = append(out, dp)
		}
		return &sliceIterator{rows: out}
	}

	return New(result, build), nil
}
