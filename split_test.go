package thicket

import (
	"math"
	"math/rand"
	"testing"
)

func TestImpurity(t *testing.T) {
	testCases := []struct {
		name     string
		labels   []int
		expected float64
	}{
		{"empty", nil, 0.0},
		{"all zeros", []int{0, 0, 0, 0}, 0.0},
		{"all ones", []int{1, 1, 1}, 0.0},
		{"half and half", []int{0, 1, 0, 1}, 0.25},
		{"one in four", []int{0, 0, 0, 1}, 0.1875},
		{"single row", []int{1}, 0.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Impurity(tc.labels)
			if math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("expected impurity %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestImpurityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(50)
		labels := make([]int, n)
		for j := range labels {
			labels[j] = rng.Intn(2)
		}
		got := Impurity(labels)
		if got < 0 || got > 0.25 {
			t.Fatalf("impurity %v of %v out of [0, 0.25]", got, labels)
		}
	}
}

func TestImpurityReduction(t *testing.T) {
	parent := []int{0, 0, 1, 1}
	t.Run("perfect split", func(t *testing.T) {
		got := ImpurityReduction(parent, []int{0, 0}, []int{1, 1})
		if math.Abs(got-0.25) > 1e-12 {
			t.Errorf("expected reduction 0.25, got %v", got)
		}
	})
	t.Run("useless split", func(t *testing.T) {
		got := ImpurityReduction(parent, []int{0, 1}, []int{0, 1})
		if math.Abs(got) > 1e-12 {
			t.Errorf("expected reduction 0, got %v", got)
		}
	})
	t.Run("empty side", func(t *testing.T) {
		got := ImpurityReduction(parent, parent, nil)
		if math.Abs(got) > 1e-12 {
			t.Errorf("expected reduction 0, got %v", got)
		}
	})
	t.Run("empty parent", func(t *testing.T) {
		got := ImpurityReduction(nil, nil, nil)
		if got != 0 {
			t.Errorf("expected reduction 0, got %v", got)
		}
	})
}

func TestBestSplit(t *testing.T) {
	t.Run("clean separation", func(t *testing.T) {
		threshold, ok := BestSplit([]float64{1, 2, 3, 4}, []int{0, 0, 1, 1})
		if !ok {
			t.Fatal("expected a split to be found")
		}
		if threshold != 2.5 {
			t.Errorf("expected threshold 2.5, got %v", threshold)
		}
	})
	t.Run("unsorted column", func(t *testing.T) {
		threshold, ok := BestSplit([]float64{4, 1, 3, 2}, []int{1, 0, 1, 0})
		if !ok {
			t.Fatal("expected a split to be found")
		}
		if threshold != 2.5 {
			t.Errorf("expected threshold 2.5, got %v", threshold)
		}
	})
	t.Run("constant column", func(t *testing.T) {
		_, ok := BestSplit([]float64{7, 7, 7, 7}, []int{0, 1, 0, 1})
		if ok {
			t.Error("expected no split on a constant column")
		}
	})
	t.Run("uninformative column", func(t *testing.T) {
		// Both sides of every candidate threshold stay half and
		// half, so no candidate achieves a positive reduction.
		_, ok := BestSplit([]float64{1, 1, 2, 2}, []int{0, 1, 0, 1})
		if ok {
			t.Error("expected no split on an uninformative column")
		}
	})
	t.Run("pure labels", func(t *testing.T) {
		_, ok := BestSplit([]float64{1, 2, 3, 4}, []int{1, 1, 1, 1})
		if ok {
			t.Error("expected no split on pure labels")
		}
	})
	t.Run("tie keeps smallest threshold", func(t *testing.T) {
		// Splitting at 1.5 and at 3.5 both isolate one odd row,
		// yielding the same reduction.
		threshold, ok := BestSplit([]float64{1, 2, 3, 4}, []int{1, 0, 0, 1})
		if !ok {
			t.Fatal("expected a split to be found")
		}
		if threshold != 1.5 {
			t.Errorf("expected threshold 1.5, got %v", threshold)
		}
	})
	t.Run("single value", func(t *testing.T) {
		_, ok := BestSplit([]float64{3}, []int{1})
		if ok {
			t.Error("expected no split on a single row")
		}
	})
}

func TestSampleColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	t.Run("all columns", func(t *testing.T) {
		got := sampleColumns(rng, 4, 4)
		for i, c := range got {
			if c != i {
				t.Fatalf("expected all columns in order, got %v", got)
			}
		}
	})
	t.Run("subset is sorted and distinct", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got := sampleColumns(rng, 3, 10)
			if len(got) != 3 {
				t.Fatalf("expected 3 columns, got %v", got)
			}
			for j := 1; j < len(got); j++ {
				if got[j] <= got[j-1] {
					t.Fatalf("expected sorted distinct columns, got %v", got)
				}
			}
			for _, c := range got {
				if c < 0 || c >= 10 {
					t.Fatalf("column %d out of range in %v", c, got)
				}
			}
		}
	})
}
