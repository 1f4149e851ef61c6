// Package parquet reads a Dataset from a Parquet file's flat leaf
// columns using parquet-go's generic row reader. Every column decodes
// as a Measure; Parquet schemas carry no role information.
package parquet

import (
	"fmt"
	"io"
	"os"

	pq "github.com/parquet-go/parquet-go"

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

	reader := pq.NewReader(f)
	defer reader.Close()

	schema := reader.Schema()
	fields := schema.Fields()

	columns := make([]string, len(fields))
	types := make([]value.Type, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
		types[i] = parquetKindToType(field.Type().Kind())
	}

	components := make([]structure.Component, len(columns))
	for i, name := range columns {
		components[i] = structure.Component{Name: name, Type: types[i], Role: structure.Measure}
	}
	s, err := structure.New(components...)
	if err != nil {
		return nil, fmt.Errorf("cannot build structure from Parquet schema: %w", err)
	}

	var rows []structure.DataPoint
	rowbuf := make([]pq.Row, 1)
	for {
		rowbuf[0] = rowbuf[0][:0]
		n, err := reader.ReadRows(rowbuf)
		if n == 0 {
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("error reading Parquet row: %w", err)
			}
			break
		}
		row := rowbuf[0]
		vals := make([]value.Value, len(columns))
		for _, v := range row {
			col := v.Column()
			if col < 0 || col >= len(columns) {
				continue
			}
			vals[col] = parquetValue(v, types[col])
		}
		dp, err := structure.NewDataPoint(s, vals)
		if err != nil {
			return nil, fmt.Errorf("row: %w", err)
		}
		rows = append(rows, dp)
	}

	return dataset.FromRows(s, rows), nil
}

func parquetKindToType(k pq.Kind) value.Type {
	switch k {
	case pq.Int32, pq.Int64:
		return value.Integer
	case pq.Float, pq.Double:
		return value.Number
	case pq.Boolean:
		return value.Boolean
	default:
		return value.String
	}
}

func parquetValue(v pq.Value, t value.Type) value.Value {
	if v.IsNull() {
		return value.Null(t)
	}
	switch t {
	case value.Integer:
		return value.Int(v.Int64())
	case value.Number:
		return value.Num(v.Double())
	case value.Boolean:
		return value.Bool(v.Boolean())
	default:
		return value.Str(v.String())
	}
}
