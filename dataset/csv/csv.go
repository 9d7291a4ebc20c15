/*
Package csv reads and writes dataset.Tables as CSV streams.

The header row names the feature columns; one of the columns holds
the binary label. All values must be numeric, there is no missing
value marker.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/thicketml/thicket/dataset"
)

/*
ReadTable takes an io.Reader for a CSV stream and the name of the
label column and returns the parsed table together with the names of
its feature columns, in column order. If label is the empty string
the last column of the header is used.
*/
func ReadTable(reader io.Reader, label string) (*dataset.Table, []string, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("reading header: need at least one feature column and a label column, got %d columns", len(header))
	}
	labelIndex := -1
	if label == "" {
		labelIndex = len(header) - 1
	} else {
		for i, name := range header {
			if name == label {
				labelIndex = i
				break
			}
		}
		if labelIndex < 0 {
			return nil, nil, fmt.Errorf("reading header: label column %q not found", label)
		}
	}
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != labelIndex {
			columns = append(columns, name)
		}
	}
	var features [][]float64
	var labels []int
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		row := make([]float64, 0, len(record)-1)
		for i, v := range record {
			if i == labelIndex {
				lv, err := strconv.Atoi(v)
				if err != nil {
					return nil, nil, fmt.Errorf("parsing line %d: label %q is not an integer: %v", l, v, err)
				}
				labels = append(labels, lv)
				continue
			}
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: converting %q to float64: %v", l, v, err)
			}
			row = append(row, fv)
		}
		features = append(features, row)
	}
	t, err := dataset.New(features, labels)
	if err != nil {
		return nil, nil, err
	}
	return t, columns, nil
}

/*
ReadTableFromFilePath opens the file at the given path (os.Stdin when
the path is empty) and uses ReadTable to parse a table from it.
*/
func ReadTableFromFilePath(filepath, label string) (*dataset.Table, []string, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening table at %s: %v", filepath, err)
		}
		defer f.Close()
	}
	t, columns, err := ReadTable(f, label)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return t, columns, err
}

/*
ReadRows takes an io.Reader for a CSV stream of unlabeled rows and
returns the parsed feature rows and the column names from the
header. Every row must have as many values as the header.
*/
func ReadRows(reader io.Reader) ([][]float64, []string, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	var rows [][]float64
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		row := make([]float64, len(record))
		for i, v := range record {
			row[i], err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: converting %q to float64: %v", l, v, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

/*
ReadRowsFromFilePath opens the file at the given path (os.Stdin when
the path is empty) and uses ReadRows to parse unlabeled rows from it.
*/
func ReadRowsFromFilePath(filepath string) ([][]float64, []string, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening rows at %s: %v", filepath, err)
		}
		defer f.Close()
	}
	rows, columns, err := ReadRows(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return rows, columns, err
}

/*
WriteTable takes an io.Writer, a table and the names of its feature
columns and dumps the table to the writer in CSV format, with the
label appended as a final column named by label (or "label" when
empty). It returns an error if the column names do not match the
table or the writer fails.
*/
func WriteTable(writer io.Writer, t *dataset.Table, columns []string, label string) error {
	if len(columns) != t.Columns() {
		return fmt.Errorf("writing table: %d column names for %d columns", len(columns), t.Columns())
	}
	if label == "" {
		label = "label"
	}
	w := csv.NewWriter(writer)
	err := w.Write(append(append([]string{}, columns...), label))
	if err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	record := make([]string, len(columns)+1)
	for i := 0; i < t.Count(); i++ {
		for j, v := range t.Row(i) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[len(record)-1] = strconv.Itoa(t.Label(i))
		if err = w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %v", i, err)
		}
	}
	w.Flush()
	return w.Error()
}
