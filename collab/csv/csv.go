// Package csv reads a Dataset from a CSV file, one component per
// header column, all inferred as Measure unless the caller supplies an
// explicit structure, in which case rows are decoded against that
// structure's declared types and roles instead.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/insee-trevas/vtlengine/dataset"
	"github.com/insee-trevas/vtlengine/structure"
	"github.com/insee-trevas/vtlengine/value"
)

// ReadFile loads filename as a Dataset, inferring one component per CSV
// column. Column type is inferred from every value in that column: all
// non-null values must parse consistently as Integer, Number, Boolean,
// or fall back to String.
func ReadFile(filename string) (*dataset.Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()
	return Read(f)
}

// Read loads a Dataset from an already-open CSV reader.
func Read(r io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var raw [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
		}
		raw = append(raw, row)
	}

	types := inferColumnTypes(columns, raw)
	components := make([]structure.Component, len(columns))
	for i, name := range columns {
		components[i] = structure.Component{Name: name, Type: types[i], Role: structure.Measure}
	}
	s, err := structure.New(components...)
	if err != nil {
		return nil, fmt.Errorf("cannot build structure from CSV header: %w", err)
	}

	rows := make([]structure.DataPoint, len(raw))
	for i, record := range raw {
		vals := make([]value.Value, len(columns))
		for j, t := range types {
			vals[j] = parseCell(record[j], t)
		}
		dp, err := structure.NewDataPoint(s, vals)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows[i] = dp
	}

	return dataset.FromRows(s, rows), nil
}

// ReadFileWithStructure loads filename as a Dataset against an
// already-known structure (e.g. one built by collab/sdmx), rather than
// inferring types and roles from the file, mirroring the
// structure-then-data two-step contract of CSVDataset in
// original_source/vtl-sdmx's DataStructureTest.
func ReadFileWithStructure(filename string, s structure.DataStructure) (*dataset.Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()
	return ReadWithStructure(f, s)
}

// ReadWithStructure loads a Dataset from an already-open CSV reader
// against an already-known structure. CSV header columns are matched to
// s's components by name, in any order; header columns not in s are
// ignored, and components absent from the header read as null.
func ReadWithStructure(r io.Reader, s structure.DataStructure) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	colIndex := make([]int, len(header))
	for i, h := range header {
		colIndex[i] = s.Index(strings.TrimSpace(h))
	}

	var rows []structure.DataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}
		vals := make([]value.Value, len(s.Components))
		for i, t := range s.Components {
			vals[i] = value.Null(t.Type)
		}
		for i, idx := range colIndex {
			if idx < 0 || i >= len(record) {
				continue
			}
			vals[idx] = parseCell(strings.TrimSpace(record[i]), s.Components[idx].Type)
		}
		dp, err := structure.NewDataPoint(s, vals)
		if err != nil {
			return nil, fmt.Errorf("row: %w", err)
		}
		rows = append(rows, dp)
	}

	return dataset.FromRows(s, rows), nil
}

func inferColumnTypes(columns []string, rows [][]string) []value.Type {
	types := make([]value.Type, len(columns))
	seen := make([]bool, len(columns))
	for _, row := range rows {
		for j, cell := range row {
			if cell == "" || strings.EqualFold(cell, "null") {
				continue
			}
			t := cellType(cell)
			cur := types[j]
			switch {
			case !seen[j]:
				types[j] = t
				seen[j] = true
			case cur == t:
				// no change
			case numericType(cur) && numericType(t):
				types[j] = value.WidenNumeric(cur, t)
			default:
				types[j] = value.String
			}
		}
	}
	for j, s := range seen {
		if !s {
			types[j] = value.String
		}
	}
	return types
}

func numericType(t value.Type) bool { return t == value.Integer || t == value.Number }

func cellType(s string) value.Type {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Integer
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Number
	}
	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return value.Boolean
	}
	return value.String
}

func parseCell(s string, t value.Type) value.Value {
	if s == "" || strings.EqualFold(s, "null") {
		return value.Null(t)
	}
	switch t {
	case value.Integer:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Null(t)
		}
		return value.Int(v)
	case value.Number:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Null(t)
		}
		return value.Num(v)
	case value.Boolean:
		return value.Bool(strings.EqualFold(s, "true"))
	default:
		return value.Str(s)
	}
}
