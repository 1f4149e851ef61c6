// Package structure implements the dataset schema model: components,
// roles, data structures, and data points.
package structure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/insee-trevas/vtlengine/value"
)

// Role is a component's part in a data point's identity.
type Role int

const (
	Identifier Role = iota
	Measure
	Attribute
)

func (r Role) String() string {
	switch r {
	case Identifier:
		return "Identifier"
	case Measure:
		return "Measure"
	case Attribute:
		return "Attribute"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Component is a named, typed column descriptor carrying a role.
type Component struct {
	Name string
	Type value.Type
	Role Role
}

// DataStructure is an ordered sequence of components. Component names are
// unique within a structure.
type DataStructure struct {
	Components []Component
}

// New builds a DataStructure, rejecting duplicate component names.
func New(components ...Component) (DataStructure, error) {
	seen := make(map[string]bool, len(components))
	for _, c := range components {
		if seen[c.Name] {
			return DataStructure{}, fmt.Errorf("duplicate component name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return DataStructure{Components: components}, nil
}

// Index returns the position of the named component, or -1.
func (s DataStructure) Index(name string) int {
	for i, c := range s.Components {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Component returns the named component and whether it was found.
func (s DataStructure) Component(name string) (Component, bool) {
	i := s.Index(name)
	if i < 0 {
		return Component{}, false
	}
	return s.Components[i], true
}

// Identifiers returns the components with role Identifier, in order.
func (s DataStructure) Identifiers() []Component {
	var out []Component
	for _, c := range s.Components {
		if c.Role == Identifier {
			out = append(out, c)
		}
	}
	return out
}

// Names returns component names in order.
func (s DataStructure) Names() []string {
	names := make([]string, len(s.Components))
	for i, c := range s.Components {
		names[i] = c.Name
	}
	return names
}

// Equal reports structural equality by multiset of (name, type, role);
// component order does not matter.
func (s DataStructure) Equal(other DataStructure) bool {
	if len(s.Components) != len(other.Components) {
		return false
	}
	key := func(c Component) string {
		return fmt.Sprintf("%s\x00%s\x00%s", c.Name, c.Type, c.Role)
	}
	a := make([]string, len(s.Components))
	b := make([]string, len(other.Components))
	for i, c := range s.Components {
		a[i] = key(c)
	}
	for i, c := range other.Components {
		b[i] = key(c)
	}
	sort.Strings(a)
	sort.Strings(b)
	return strings.Join(a, "\x01") == strings.Join(b, "\x01")
}

// HasIdentifier reports whether the structure carries at least one
// identifier component — required of any dataset that participates in
// a join.
func (s DataStructure) HasIdentifier() bool {
	return len(s.Identifiers()) > 0
}

// DataPoint is one row: a tuple whose arity and positional types match a
// DataStructure. It is immutable after construction.
type DataPoint struct {
	structure DataStructure
	values    []value.Value
}

// NewDataPoint builds a DataPoint against structure, validating arity and
// positional types.
func NewDataPoint(structure DataStructure, values []value.Value) (DataPoint, error) {
	if len(values) != len(structure.Components) {
		return DataPoint{}, fmt.Errorf("data point has %d values, structure has %d components", len(values), len(structure.Components))
	}
	for i, c := range structure.Components {
		if values[i].Type != c.Type {
			return DataPoint{}, fmt.Errorf("data point value %d (%s) has type %s, component %q declares %s", i, values[i], values[i].Type, c.Name, c.Type)
		}
	}
	cp := make([]value.Value, len(values))
	copy(cp, values)
	return DataPoint{structure: structure, values: cp}, nil
}

// Get returns the value of the named component.
func (p DataPoint) Get(name string) (value.Value, bool) {
	i := p.structure.Index(name)
	if i < 0 {
		return value.Value{}, false
	}
	return p.values[i], true
}

// At returns the value at a position.
func (p DataPoint) At(i int) value.Value { return p.values[i] }

// Values returns the underlying value slice; callers must not mutate it.
func (p DataPoint) Values() []value.Value { return p.values }

// Structure returns the data point's structure.
func (p DataPoint) Structure() DataStructure { return p.structure }
