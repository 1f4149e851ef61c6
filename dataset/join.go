package dataset

import (
	"strings"

	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// JoinKind selects inner, left, or full outer join semantics.
type JoinKind int

const (
	Inner JoinKind = iota
	Left
	Full
)

// Join implements the join operator. The shared identifier set between
// both operands must be non-empty and, in this implementation, must
// equal each operand's full identifier set — see DESIGN.md's Open
// Questions decision on partially-overlapping identifier sets.
type Join struct {
	LeftChild, RightChild Expr
	Kind                  JoinKind

	resultS   structure.DataStructure
	idNames   []string
	leftNonID []renamedComponent
	rightNonID []renamedComponent
}

type renamedComponent struct {
	origName string
	out      structure.Component
}

// NewJoin builds a join operator. leftRename/rightRename rename
// non-identifier components before the merge, to disambiguate name
// collisions between operands; pass nil for no renames.
func NewJoin(left, right Expr, kind JoinKind, leftRename, rightRename map[string]string) (*Join, error) {
	ls, rs := left.Structure(), right.Structure()

	lids, rids := ls.Identifiers(), rs.Identifiers()
	lidSet := make(map[string]bool, len(lids))
	for _, c := range lids {
		lidSet[c.Name] = true
	}
	ridSet := make(map[string]bool, len(rids))
	for _, c := range rids {
		ridSet[c.Name] = true
	}

	var shared []string
	for n := range lidSet {
		if ridSet[n] {
			shared = append(shared, n)
		}
	}
	if len(shared) == 0 {
		return nil, invalidArg("join: shared identifier set is empty")
	}
	if len(shared) != len(lidSet) || len(shared) != len(ridSet) {
		return nil, invalidArg("join: operands' identifier sets are not identical (shared: %s)", strings.Join(shared, ","))
	}

	idComponents := lids // same names/types/roles as rids, by construction above being validated below
	for _, c := range idComponents {
		rc, _ := rs.Component(c.Name)
		if rc.Type != c.Type {
			return nil, invalidArg("join: identifier %q has mismatched types %s and %s", c.Name, c.Type, rc.Type)
		}
	}

	leftNonID, err := renameNonIdentifiers(ls, leftRename)
	if err != nil {
		return nil, err
	}
	rightNonID, err := renameNonIdentifiers(rs, rightRename)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(idComponents))
	var merged []structure.Component
	for _, c := range idComponents {
		names[c.Name] = true
		merged = append(merged, c)
	}
	for _, rc := range leftNonID {
		if names[rc.out.Name] {
			return nil, invalidArg("join: component %q collides, disambiguate with a rename clause", rc.out.Name)
		}
		names[rc.out.Name] = true
		merged = append(merged, rc.out)
	}
	for _, rc := range rightNonID {
		if names[rc.out.Name] {
			return nil, invalidArg("join: component %q collides, disambiguate with a rename clause", rc.out.Name)
		}
		names[rc.out.Name] = true
		merged = append(merged, rc.out)
	}

	resultS, err := structure.New(merged...)
	if err != nil {
		return nil, invalidArg("join: %v", err)
	}

	idNames := make([]string, len(idComponents))
	for i, c := range idComponents {
		idNames[i] = c.Name
	}

	return &Join{
		LeftChild: left, RightChild: right, Kind: kind,
		resultS: resultS, idNames: idNames,
		leftNonID: leftNonID, rightNonID: rightNonID,
	}, nil
}

func renameNonIdentifiers(s structure.DataStructure, renames map[string]string) ([]renamedComponent, error) {
	var out []renamedComponent
	for _, c := range s.Components {
		if c.Role == structure.Identifier {
			continue
		}
		name := c.Name
		if renames != nil {
			if n, ok := renames[c.Name]; ok {
				name = n
			}
		}
		out = append(out, renamedComponent{origName: c.Name, out: structure.Component{Name: name, Type: c.Type, Role: c.Role}})
	}
	return out, nil
}

func (j *Join) Structure() structure.DataStructure { return j.resultS }

func joinKey(dp structure.DataPoint, idNames []string) string {
	var sb strings.Builder
	for _, n := range idNames {
		v, _ := dp.Get(n)
		sb.WriteString(v.String())
		sb.WriteByte(0)
	}
	return sb.String()
}

func (j *Join) Resolve() (*Dataset, error) {
	leftDS, err := j.LeftChild.Resolve()
	if err != nil {
		return nil, err
	}
	rightDS, err := j.RightChild.Resolve()
	if err != nil {
		return nil, err
	}
	result := j.resultS
	idNames := j.idNames
	leftNonID, rightNonID := j.leftNonID, j.rightNonID
	kind := j.Kind

	build := func() Iterator {
		rightRows, err := rightDS.Materialize()
		if err != nil {
			return &errIterator{err: err}
		}
		rightByKey := make(map[string][]structure.DataPoint)
		for _, r := range rightRows {
			rightByKey[joinKey(r, idNames)] = append(rightByKey[joinKey(r, idNames)], r)
		}
		matchedRightKeys := make(map[string]bool)

		leftRows, err := leftDS.Materialize()
		if err != nil {
			return &errIterator{err: err}
		}

		var out []structure.DataPoint
		for _, l := range leftRows {
			key := joinKey(l, idNames)
			matches := rightByKey[key]
			if len(matches) > 0 {
				matchedRightKeys[key] = true
				for _, r := range matches {
					dp, err := buildJoinedRow(result, idNames, l, &r, leftNonID, rightNonID)
					if err != nil {
						return &errIterator{err: err}
					}
					out = append(out, dp)
				}
			} else if kind == Left || kind == Full {
				dp, err := buildJoinedRow(result, idNames, l, nil, leftNonID, rightNonID)
				if err != nil {
					return &errIterator{err: err}
				}
				out = append(out, dp)
			}
		}
		if kind == Full {
			for _, r := range rightRows {
				key := joinKey(r, idNames)
				if matchedRightKeys[key] {
					continue
				}
				dp, err := buildJoinedRow(result, idNames, r, &r, nil, rightNonID)
				if err != nil {
					return &errIterator{err: err}
				}
				out = append(out, dp)
			}
		}
		return &sliceIterator{rows: out}
	}

	return New(result, build), nil
}

// buildJoinedRow assembles one output row. idSource supplies the
// identifier values (the left row, or the right row when synthesizing
// unmatched-right rows for a full outer join) and also the left
// non-identifier values when leftNonID is non-nil; rightRow supplies the
// right non-identifier values and is nil when the right side has no match.
func buildJoinedRow(result structure.DataStructure, idNames []string, idSource structure.DataPoint, rightRow *structure.DataPoint, leftNonID, rightNonID []renamedComponent) (structure.DataPoint, error) {
	vals := make([]value.Value, len(result.Components))
	for i, c := range result.Components {
		switch {
		case contains(idNames, c.Name):
			v, _ := idSource.Get(c.Name)
			vals[i] = v
		default:
			if rc := find(leftNonID, c.Name); rc != nil {
				v, ok := idSource.Get(rc.origName)
				if ok {
					vals[i] = v
					continue
				}
			}
			if rc := find(rightNonID, c.Name); rc != nil && rightRow != nil {
				v, _ := rightRow.Get(rc.origName)
				vals[i] = v
				continue
			}
			vals[i] = value.Null(c.Type)
		}
	}
	return structure.NewDataPoint(result, vals)
}

func contains(names []string, n string) bool {
	for _, x := range names {
		if x == n {
			return true
		}
	}
	return false
}

func find(components []renamedComponent, outName string) *renamedComponent {
	for i, c := range components {
		if c.out.Name == outName {
			return &components[i]
		}
	}
	return nil
}

type errIterator struct {
	err   error
	state IterState
}

func (it *errIterator) State() IterState { return it.state }

func (it *errIterator) Next() (structure.DataPoint, bool, error) {
	return structure.DataPoint{}, false, it.err
}
