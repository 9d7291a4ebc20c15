package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thicketml/thicket/dataset"
)

const labeledCSV = `sepalLength,sepalWidth,species
5.1,3.5,0
7.0,3.2,1
6.3,3.3,1
`

func TestReadTable(t *testing.T) {
	t.Run("label by name", func(t *testing.T) {
		tbl, columns, err := ReadTable(strings.NewReader(labeledCSV), "species")
		if err != nil {
			t.Fatalf("reading table: %v", err)
		}
		if tbl.Count() != 3 || tbl.Columns() != 2 {
			t.Fatalf("expected 3 rows of 2 columns, got %d rows of %d columns", tbl.Count(), tbl.Columns())
		}
		if len(columns) != 2 || columns[0] != "sepalLength" || columns[1] != "sepalWidth" {
			t.Errorf("expected the feature column names in order, got %v", columns)
		}
		if tbl.Row(1)[0] != 7.0 || tbl.Label(1) != 1 {
			t.Errorf("expected row 1 to be (7.0, 3.2) labeled 1, got %v labeled %d", tbl.Row(1), tbl.Label(1))
		}
	})
	t.Run("label defaults to last column", func(t *testing.T) {
		tbl, _, err := ReadTable(strings.NewReader(labeledCSV), "")
		if err != nil {
			t.Fatalf("reading table: %v", err)
		}
		if tbl.Columns() != 2 {
			t.Errorf("expected 2 feature columns, got %d", tbl.Columns())
		}
		if tbl.Label(0) != 0 || tbl.Label(2) != 1 {
			t.Error("expected the last column to be read as the label")
		}
	})
	t.Run("label in the middle", func(t *testing.T) {
		doc := "a,y,b\n1,1,2\n3,0,4\n"
		tbl, columns, err := ReadTable(strings.NewReader(doc), "y")
		if err != nil {
			t.Fatalf("reading table: %v", err)
		}
		if len(columns) != 2 || columns[0] != "a" || columns[1] != "b" {
			t.Fatalf("expected feature columns a and b, got %v", columns)
		}
		if tbl.Row(1)[1] != 4 || tbl.Label(1) != 0 {
			t.Errorf("expected row 1 to be (3, 4) labeled 0, got %v labeled %d", tbl.Row(1), tbl.Label(1))
		}
	})
	t.Run("unknown label", func(t *testing.T) {
		_, _, err := ReadTable(strings.NewReader(labeledCSV), "petalWidth")
		if err == nil {
			t.Error("expected an error for an unknown label column")
		}
	})
	t.Run("non-numeric value", func(t *testing.T) {
		_, _, err := ReadTable(strings.NewReader("a,y\nfoo,1\n"), "")
		if err == nil {
			t.Error("expected an error for a non-numeric feature value")
		}
	})
	t.Run("single column", func(t *testing.T) {
		_, _, err := ReadTable(strings.NewReader("y\n1\n"), "")
		if err == nil {
			t.Error("expected an error for a header without feature columns")
		}
	})
}

func TestReadRows(t *testing.T) {
	rows, columns, err := ReadRows(strings.NewReader("a,b\n1,2\n3,4\n"))
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(columns) != 2 {
		t.Errorf("expected 2 column names, got %v", columns)
	}
	if len(rows) != 2 || rows[1][0] != 3 || rows[1][1] != 4 {
		t.Errorf("expected rows [[1 2] [3 4]], got %v", rows)
	}
}

func TestWriteTable(t *testing.T) {
	tbl, err := dataset.New([][]float64{{5.1, 3.5}, {7, 3.2}}, []int{0, 1})
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	var buf bytes.Buffer
	err = WriteTable(&buf, tbl, []string{"sepalLength", "sepalWidth"}, "species")
	if err != nil {
		t.Fatalf("writing table: %v", err)
	}
	expected := "sepalLength,sepalWidth,species\n5.1,3.5,0\n7,3.2,1\n"
	if buf.String() != expected {
		t.Errorf("expected CSV output %q, got %q", expected, buf.String())
	}
	t.Run("roundtrip", func(t *testing.T) {
		got, columns, err := ReadTable(bytes.NewReader(buf.Bytes()), "species")
		if err != nil {
			t.Fatalf("reading written table: %v", err)
		}
		if got.Count() != tbl.Count() || len(columns) != 2 {
			t.Fatalf("expected %d rows and 2 columns back, got %d and %d", tbl.Count(), got.Count(), len(columns))
		}
		for i := 0; i < got.Count(); i++ {
			if got.Row(i)[0] != tbl.Row(i)[0] || got.Label(i) != tbl.Label(i) {
				t.Errorf("row %d changed through the roundtrip: %v/%d", i, got.Row(i), got.Label(i))
			}
		}
	})
	t.Run("mismatched column names", func(t *testing.T) {
		err := WriteTable(&bytes.Buffer{}, tbl, []string{"onlyOne"}, "")
		if err == nil {
			t.Error("expected an error for mismatched column names")
		}
	})
}
