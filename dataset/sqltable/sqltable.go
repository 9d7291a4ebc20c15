/*
Package sqltable loads dataset.Tables from SQL databases.

Connections are opened through driver-specific adapter subpackages
(sqlite3adapter, pgadapter) so that a driver is only linked into a
binary that actually uses it.
*/
package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

/*
Read takes a context, an open database handle, the name of a table
and the names of its feature and label columns, and returns the
feature rows and labels selected from the table. All selected
columns must hold numeric values.

Column and table names are quoted with double quotes and may not
contain the double-quote character.
*/
func Read(ctx context.Context, db *sql.DB, table string, columns []string, label string) ([][]float64, []int, error) {
	names := append(append([]string{}, columns...), label)
	for _, n := range names {
		if strings.ContainsAny(n, `"`) {
			return nil, nil, fmt.Errorf(`column name %s contains invalid character '"'`, n)
		}
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	query := fmt.Sprintf("SELECT %s FROM %q", strings.Join(quoted, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("selecting from %s: %v", table, err)
	}
	defer rows.Close()
	var features [][]float64
	var labels []int
	for i := 0; rows.Next(); i++ {
		values := make([]float64, len(names))
		scanned := make([]interface{}, len(names))
		for j := range values {
			scanned[j] = &values[j]
		}
		if err = rows.Scan(scanned...); err != nil {
			return nil, nil, fmt.Errorf("scanning row %d of %s: %v", i, table, err)
		}
		features = append(features, values[:len(columns):len(columns)])
		labels = append(labels, int(values[len(columns)]))
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating over %s: %v", table, err)
	}
	return features, labels, nil
}
