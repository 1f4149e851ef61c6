// Package jsonschema decodes a DataStructure and its data points from
// JSON, using the same STRING/INTEGER/NUMBER/BOOLEAN vocabulary as the
// original engine's Component deserializer
// (original_source/vtl-jackson/ComponentDeserializer.java), which maps
// STRING->String, INTEGER->Long, NUMBER->Double, BOOLEAN->Boolean.
package jsonschema

import (
	"encoding/json"
	"fmt"

	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// componentDoc is the wire shape of one component descriptor.
type componentDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Role string `json:"role"`
}

type structureDoc struct {
	Components []componentDoc `json:"components"`
}

// DecodeStructure parses a component-list document into a DataStructure.
func DecodeStructure(data []byte) (structure.DataStructure, error) {
	var doc structureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return structure.DataStructure{}, fmt.Errorf("cannot parse structure document: %w", err)
	}
	components := make([]structure.Component, len(doc.Components))
	for i, cd := range doc.Components {
		t, err := decodeType(cd.Type)
		if err != nil {
			return structure.DataStructure{}, fmt.Errorf("component %q: %w", cd.Name, err)
		}
		r, err := decodeRole(cd.Role)
		if err != nil {
			return structure.DataStructure{}, fmt.Errorf("component %q: %w", cd.Name, err)
		}
		components[i] = structure.Component{Name: cd.Name, Type: t, Role: r}
	}
	return structure.New(components...)
}

func decodeType(s string) (value.Type, error) {
	switch s {
	case "STRING":
		return value.String, nil
	case "INTEGER":
		return value.Integer, nil
	case "NUMBER":
		return value.Number, nil
	case "BOOLEAN":
		return value.Boolean, nil
	default:
		return 0, fmt.Errorf("unrecognized component type %q", s)
	}
}

func decodeRole(s string) (structure.Role, error) {
	switch s {
	case "", "MEASURE":
		return structure.Measure, nil
	case "IDENTIFIER":
		return structure.Identifier, nil
	case "ATTRIBUTE":
		return structure.Attribute, nil
	default:
		return 0, fmt.Errorf("unrecognized component role %q", s)
	}
}

// DecodeDataPoints parses a JSON array of objects into data points
// against an already-known structure, one object per row, keyed by
// component name.
func DecodeDataPoints(s structure.DataStructure, data []byte) ([]structure.DataPoint, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cannot parse data points: %w (expected array of objects)", err)
	}
	rows := make([]structure.DataPoint, len(records))
	for i, rec := range records {
		vals := make([]value.Value, len(s.Components))
		for j, c := range s.Components {
			raw, ok := rec[c.Name]
			if !ok || raw == nil {
				vals[j] = value.Null(c.Type)
				continue
			}
			v, err := jsonValue(raw, c.Type)
			if err != nil {
				return nil, fmt.Errorf("row %d, component %q: %w", i, c.Name, err)
			}
			vals[j] = v
		}
		dp, err := structure.NewDataPoint(s, vals)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = dp
	}
	return rows, nil
}

func jsonValue(raw any, t value.Type) (value.Value, error) {
	switch t {
	case value.Integer:
		f, ok := raw.(float64)
		if !ok {
			return value.Value{}, fmt.Errorf("expected number, got %T", raw)
		}
		return value.Int(int64(f)), nil
	case value.Number:
		f, ok := raw.(float64)
		if !ok {
			return value.Value{}, fmt.Errorf("expected number, got %T", raw)
		}
		return value.Num(f), nil
	case value.String:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, fmt.Errorf("expected string, got %T", raw)
		}
		return value.Str(s), nil
	case value.Boolean:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, fmt.Errorf("expected boolean, got %T", raw)
		}
		return value.Bool(b), nil
	default:
		return value.Value{}, fmt.Errorf("unrecognized type %v", t)
	}
}
