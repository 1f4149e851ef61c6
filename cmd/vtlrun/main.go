// Command vtlrun executes a VTL-shaped program against a script file and
// prints its final binding: a multi-statement program read from a file,
// run one statement at a time, with the last binding printed as a table
// or CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/insee-trevas/vtlengine/dataset"
	"github.com/insee-trevas/vtlengine/env"
	"github.com/insee-trevas/vtlengine/lang"
)

func main() {
	script := flag.String("script", "", "path to a VTL script file (required)")
	format := flag.String("format", "table", "output format for the final result: table or csv")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: vtlrun -script <path> [-format table|csv]")
	}
	flag.Parse()

	if *script == "" {
		flag.Usage()
		os.Exit(1)
	}

	src, err := os.ReadFile(*script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}

	e := env.New()
	last, err := lang.Run(string(src), e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if last == "" {
		return
	}

	if ds, err := e.LookupDataset(last); err == nil {
		printDataset(ds, *format)
		return
	}
	v, err := e.LookupScalar(last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s := %s\n", last, v.String())
}

func printDataset(ds *dataset.Dataset, format string) {
	names := ds.Structure.Names()
	it := ds.NewIterator()
	var rows [][]string
	for {
		dp, ok, err := it.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			break
		}
		vals := dp.Values()
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = v.String()
		}
		rows = append(rows, row)
	}

	if format == "csv" {
		printCSV(names, rows)
		return
	}
	printTable(names, rows)
}

func printCSV(columns []string, rows [][]string) {
	fmt.Println(strings.Join(columns, ","))
	for _, row := range rows {
		fmt.Println(strings.Join(row, ","))
	}
}

func printTable(columns []string, rows [][]string) {
	if len(columns) == 0 {
		return
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerParts := make([]string, len(columns))
	for i, col := range columns {
		headerParts[i] = padRight(col, widths[i])
	}
	fmt.Println(strings.Join(headerParts, " | "))

	sepParts := make([]string, len(columns))
	for i := range columns {
		sepParts[i] = strings.Repeat("-", widths[i])
	}
	fmt.Println(strings.Join(sepParts, "-+-"))

	for _, row := range rows {
		parts := make([]string, len(columns))
		for i := range columns {
			parts[i] = padRight(row[i], widths[i])
		}
		fmt.Println(strings.Join(parts, " | "))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
