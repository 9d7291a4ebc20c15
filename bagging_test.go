package thicket

import (
	"context"
	"math/rand"
	"testing"

	"github.com/thicketml/thicket/tree"
)

func TestGrowBag(t *testing.T) {
	ctx := context.Background()
	tbl := randomTable(t, rand.New(rand.NewSource(5)), 100)
	trees, err := GrowBag(ctx, tbl, DefaultParams(), 7, rand.New(rand.NewSource(6)), 2)
	if err != nil {
		t.Fatalf("growing ensemble: %v", err)
	}
	if len(trees) != 7 {
		t.Fatalf("expected 7 trees, got %d", len(trees))
	}
	for i, tr := range trees {
		root, err := tr.NodeStore.Get(ctx, tr.RootID)
		if err != nil {
			t.Fatalf("getting root of tree %d: %v", i, err)
		}
		if root.Count() != tbl.Count() {
			t.Errorf("expected the bootstrap resample of tree %d to hold %d rows, got %d", i, tbl.Count(), root.Count())
		}
	}
}

func TestGrowBagReproducible(t *testing.T) {
	ctx := context.Background()
	tbl := randomTable(t, rand.New(rand.NewSource(8)), 80)
	p := Params{NMin: 2, MinLeaf: 1, NFeat: 2}
	first, err := GrowBag(ctx, tbl, p, 5, rand.New(rand.NewSource(9)), 4)
	if err != nil {
		t.Fatalf("growing first ensemble: %v", err)
	}
	second, err := GrowBag(ctx, tbl, p, 5, rand.New(rand.NewSource(9)), 1)
	if err != nil {
		t.Fatalf("growing second ensemble: %v", err)
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("expected tree %d of equally seeded ensembles to match", i)
		}
	}
}

func TestGrowBagInvalidTreeCount(t *testing.T) {
	ctx := context.Background()
	tbl := separableTable(t)
	_, err := GrowBag(ctx, tbl, DefaultParams(), 0, rand.New(rand.NewSource(1)), 1)
	if err != ErrInvalidTreeCount {
		t.Errorf("expected %q, got %v", ErrInvalidTreeCount, err)
	}
}

// leafTree returns a single-node tree that always predicts the given
// label.
func leafTree(t *testing.T, label int) *tree.Tree {
	t.Helper()
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	n := &tree.Node{Zeros: 1 - label, Ones: label}
	if err := ns.Create(ctx, n); err != nil {
		t.Fatalf("creating node: %v", err)
	}
	return tree.New(n.ID, ns, 2, 2, 1)
}

func TestClassifyBag(t *testing.T) {
	ctx := context.Background()
	row := [][]float64{{1}}
	t.Run("majority of ones", func(t *testing.T) {
		trees := []*tree.Tree{leafTree(t, 1), leafTree(t, 1), leafTree(t, 0)}
		got, err := ClassifyBag(ctx, row, trees, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("classifying: %v", err)
		}
		if got[0] != 1 {
			t.Errorf("expected the majority label 1, got %d", got[0])
		}
	})
	t.Run("majority of zeros", func(t *testing.T) {
		trees := []*tree.Tree{leafTree(t, 0), leafTree(t, 0), leafTree(t, 1)}
		got, err := ClassifyBag(ctx, row, trees, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("classifying: %v", err)
		}
		if got[0] != 0 {
			t.Errorf("expected the majority label 0, got %d", got[0])
		}
	})
	t.Run("tie follows the random source", func(t *testing.T) {
		trees := []*tree.Tree{leafTree(t, 0), leafTree(t, 1)}
		seen := make(map[int]bool)
		rng := rand.New(rand.NewSource(2))
		for i := 0; i < 100; i++ {
			got, err := ClassifyBag(ctx, row, trees, rng)
			if err != nil {
				t.Fatalf("classifying: %v", err)
			}
			if got[0] != 0 && got[0] != 1 {
				t.Fatalf("expected a binary label, got %d", got[0])
			}
			seen[got[0]] = true
		}
		if !seen[0] || !seen[1] {
			t.Error("expected the tie to be broken both ways over 100 draws")
		}
	})
	t.Run("no trees", func(t *testing.T) {
		_, err := ClassifyBag(ctx, row, nil, rand.New(rand.NewSource(1)))
		if err != ErrInvalidTreeCount {
			t.Errorf("expected %q, got %v", ErrInvalidTreeCount, err)
		}
	})
}
