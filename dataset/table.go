package dataset

import (
	"fmt"
	"math/rand"
)

/*
Table represents a rectangular collection of training data: an
ordered sequence of rows of numeric feature values paired with a
binary label per row.

Tables are immutable once built: subsetting operations return new
tables that share the underlying row slices but never modify them,
so a table can be read concurrently by any number of growers and
classifiers.
*/
type Table struct {
	features [][]float64
	labels   []int
}

/*
New takes a slice of feature rows and an aligned slice of labels and
returns a table built with them, or an error if the rows do not all
have the same number of columns or the label slice length does not
match the row count.

Labels are normalized on entry: any value greater than 0 becomes 1,
everything else becomes 0.
*/
func New(features [][]float64, labels []int) (*Table, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("building table: %d rows but %d labels", len(features), len(labels))
	}
	var columns int
	if len(features) > 0 {
		columns = len(features[0])
	}
	for i, row := range features {
		if len(row) != columns {
			return nil, fmt.Errorf("building table: row %d has %d columns, expected %d", i, len(row), columns)
		}
	}
	normalized := make([]int, len(labels))
	for i, l := range labels {
		if l > 0 {
			normalized[i] = 1
		}
	}
	return &Table{features: features, labels: normalized}, nil
}

// Count returns the number of rows in the table.
func (t *Table) Count() int {
	return len(t.features)
}

// Columns returns the number of feature columns in the table.
func (t *Table) Columns() int {
	if len(t.features) == 0 {
		return 0
	}
	return len(t.features[0])
}

// Row returns the feature values of the i-th row.
func (t *Table) Row(i int) []float64 {
	return t.features[i]
}

// Rows returns the feature rows of the table.
func (t *Table) Rows() [][]float64 {
	return t.features
}

// Label returns the label of the i-th row.
func (t *Table) Label(i int) int {
	return t.labels[i]
}

// Labels returns the label vector of the table.
func (t *Table) Labels() []int {
	return t.labels
}

/*
Column returns a copy of the values of the j-th feature column, in
row order. The copy can be sorted or otherwise rearranged by the
caller without affecting the table.
*/
func (t *Table) Column(j int) []float64 {
	values := make([]float64, len(t.features))
	for i, row := range t.features {
		values[i] = row[j]
	}
	return values
}

// LabelCounts returns the number of rows labeled 0 and the number of
// rows labeled 1.
func (t *Table) LabelCounts() (zeros, ones int) {
	for _, l := range t.labels {
		if l == 1 {
			ones++
		} else {
			zeros++
		}
	}
	return zeros, ones
}

/*
Gini returns the two-class Gini impurity p0*p1 of the table's label
vector: 0 for a pure table and at most 0.25 when both classes are
equally represented. An empty table has impurity 0.
*/
func (t *Table) Gini() float64 {
	zeros, ones := t.LabelCounts()
	n := zeros + ones
	if n == 0 {
		return 0
	}
	p1 := float64(ones) / float64(n)
	return (1 - p1) * p1
}

/*
Split partitions the table by the given feature column and threshold
into a left table with the rows whose value at the column is less
than or equal to the threshold and a right table with the remaining
rows. Every row of the table ends up in exactly one of the two
results; rows keep their relative order.
*/
func (t *Table) Split(column int, threshold float64) (left, right *Table) {
	l := &Table{}
	r := &Table{}
	for i, row := range t.features {
		if row[column] <= threshold {
			l.features = append(l.features, row)
			l.labels = append(l.labels, t.labels[i])
		} else {
			r.features = append(r.features, row)
			r.labels = append(r.labels, t.labels[i])
		}
	}
	return l, r
}

/*
Bootstrap returns a new table with as many rows as the receiver,
drawn from it uniformly at random with replacement using the given
random source. The resampled table shares row slices with the
original but is otherwise independent.
*/
func (t *Table) Bootstrap(rng *rand.Rand) *Table {
	n := len(t.features)
	features := make([][]float64, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		features[i] = t.features[j]
		labels[i] = t.labels[j]
	}
	return &Table{features: features, labels: labels}
}
