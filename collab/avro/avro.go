// Package avro reads a Dataset from an Avro object container file using
// goavro/v2's OCF reader, decoding fields in schema order and unwrapping
// nullable unions into the typed value model. Every field decodes as a
// Measure; there is no role information in an Avro schema.
package avro

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	goavro "github.com/linkedin/goavro/v2"

	"github.com/insee-trevas/vtlengine/dataset"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// ReadFile loads filename as a Dataset.
func ReadFile(filename string) (*dataset.Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()
	return Read(f)
}

type avroField struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type avroSchema struct {
	Fields []avroField `json:"fields"`
}

// Read loads a Dataset from an already-open Avro OCF reader.
func Read(r io.Reader) (*dataset.Dataset, error) {
	ocfr, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read Avro OCF: %w", err)
	}

	var schema avroSchema
	if err := json.Unmarshal([]byte(ocfr.Codec().Schema()), &schema); err != nil {
		return nil, fmt.Errorf("cannot parse Avro schema: %w", err)
	}

	columns := make([]string, len(schema.Fields))
	fieldTypes := make([]value.Type, len(schema.Fields))
	for i, f := range schema.Fields {
		columns[i] = f.Name
		fieldTypes[i] = inferFieldType(f.Type)
	}

	components := make([]structure.Component, len(columns))
	for i, name := range columns {
		components[i] = structure.Component{Name: name, Type: fieldTypes[i], Role: structure.Measure}
	}
	s, err := structure.New(components...)
	if err != nil {
		return nil, fmt.Errorf("cannot build structure from Avro schema: %w", err)
	}

	var rows []structure.DataPoint
	for ocfr.Scan() {
		datum, err := ocfr.Read()
		if err != nil {
			return nil, fmt.Errorf("error reading Avro record: %w", err)
		}
		rec, ok := datum.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected Avro record type %T", datum)
		}
		vals := make([]value.Value, len(columns))
		for i, col := range columns {
			raw, exists := rec[col]
			if !exists || raw == nil {
				vals[i] = value.Null(fieldTypes[i])
				continue
			}
			vals[i] = avroValue(raw, fieldTypes[i])
		}
		dp, err := structure.NewDataPoint(s, vals)
		if err != nil {
			return nil, fmt.Errorf("row: %w", err)
		}
		rows = append(rows, dp)
	}
	if err := ocfr.Err(); err != nil {
		return nil, fmt.Errorf("error reading Avro file: %w", err)
	}

	return dataset.FromRows(s, rows), nil
}

// inferFieldType maps an Avro field's declared type to a scalar Type.
// Union types (e.g. ["null", "string"]) use the first non-null branch.
func inferFieldType(t any) value.Type {
	switch v := t.(type) {
	case string:
		return avroTypeName(v)
	case []any:
		for _, branch := range v {
			if s, ok := branch.(string); ok && s != "null" {
				return avroTypeName(s)
			}
		}
		return value.String
	case map[string]any:
		if s, ok := v["type"].(string); ok {
			return avroTypeName(s)
		}
		return value.String
	default:
		return value.String
	}
}

func avroTypeName(s string) value.Type {
	switch s {
	case "int", "long":
		return value.Integer
	case "float", "double":
		return value.Number
	case "boolean":
		return value.Boolean
	default:
		return value.String
	}
}

func avroValue(raw any, t value.Type) value.Value {
	switch v := raw.(type) {
	case map[string]any:
		// Avro unions decode as {"branch-type": value}; unwrap.
		for _, inner := range v {
			return avroValue(inner, t)
		}
		return value.Null(t)
	case int32:
		return coerceNumeric(float64(v), t)
	case int64:
		return coerceNumeric(float64(v), t)
	case float32:
		return coerceNumeric(float64(v), t)
	case float64:
		return coerceNumeric(v, t)
	case string:
		return value.Str(v)
	case bool:
		return value.Bool(v)
	case []byte:
		return value.Str(string(v))
	default:
		return value.Str(fmt.Sprintf("%v", v))
	}
}

func coerceNumeric(f float64, t value.Type) value.Value {
	if t == value.Integer {
		return value.Int(int64(f))
	}
	return value.Num(f)
}
