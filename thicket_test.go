package thicket

import (
	"context"
	"math/rand"
	"testing"

	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/queue"
	"github.com/thicketml/thicket/tree"
)

func mustTable(t *testing.T, features [][]float64, labels []int) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(features, labels)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return tbl
}

func separableTable(t *testing.T) *dataset.Table {
	return mustTable(t,
		[][]float64{{1}, {2}, {3}, {4}},
		[]int{0, 0, 1, 1})
}

// randomTable builds a table whose label depends on the second of
// its three columns, with some rows mislabeled so the tree has to go
// deeper than the root.
func randomTable(t *testing.T, rng *rand.Rand, n int) *dataset.Table {
	features := make([][]float64, n)
	labels := make([]int, n)
	for i := range features {
		features[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		if features[i][1] > 0.5 {
			labels[i] = 1
		}
		if rng.Float64() < 0.1 {
			labels[i] = 1 - labels[i]
		}
	}
	return mustTable(t, features, labels)
}

func TestGrowSeparable(t *testing.T) {
	ctx := context.Background()
	tbl := separableTable(t)
	tr, err := Grow(ctx, tbl, Params{NMin: 2, MinLeaf: 1, NFeat: 1}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	root, err := tr.NodeStore.Get(ctx, tr.RootID)
	if err != nil {
		t.Fatalf("getting root node: %v", err)
	}
	if root.Terminal() {
		t.Fatal("expected the root to be split")
	}
	if root.Split.Column != 0 || root.Split.Threshold != 2.5 {
		t.Errorf("expected split on column 0 at 2.5, got column %d at %v", root.Split.Column, root.Split.Threshold)
	}
	testCases := []struct {
		row      []float64
		expected int
	}{
		{[]float64{1}, 0},
		{[]float64{2.5}, 0},
		{[]float64{2.6}, 1},
		{[]float64{100}, 1},
	}
	for _, tc := range testCases {
		got, err := tr.Classify(ctx, tc.row)
		if err != nil {
			t.Fatalf("classifying %v: %v", tc.row, err)
		}
		if got != tc.expected {
			t.Errorf("expected label %d for %v, got %d", tc.expected, tc.row, got)
		}
	}
}

func TestGrowConstantColumn(t *testing.T) {
	ctx := context.Background()
	tbl := mustTable(t,
		[][]float64{{1}, {1}, {1}, {1}},
		[]int{0, 1, 0, 1})
	tr, err := Grow(ctx, tbl, DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	root, err := tr.NodeStore.Get(ctx, tr.RootID)
	if err != nil {
		t.Fatalf("getting root node: %v", err)
	}
	if !root.Terminal() {
		t.Fatal("expected a terminal root when no column can split")
	}
	got, err := tr.Classify(ctx, []float64{1})
	if err != nil {
		t.Fatalf("classifying: %v", err)
	}
	if got != 0 {
		t.Errorf("expected the label tie to resolve to 0, got %d", got)
	}
}

func TestGrowStopsBelowNMin(t *testing.T) {
	ctx := context.Background()
	tbl := separableTable(t)
	tr, err := Grow(ctx, tbl, Params{NMin: 5, MinLeaf: 1, NFeat: 0}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	root, err := tr.NodeStore.Get(ctx, tr.RootID)
	if err != nil {
		t.Fatalf("getting root node: %v", err)
	}
	if !root.Terminal() {
		t.Error("expected a terminal root when the table has fewer rows than nmin")
	}
}

func TestGrowPartitionsRows(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	tbl := randomTable(t, rng, 200)
	tr, err := Grow(ctx, tbl, DefaultParams(), rng)
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	err = tr.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		if n.Terminal() {
			return nil
		}
		left, err := tr.NodeStore.Get(ctx, n.LeftID)
		if err != nil {
			return err
		}
		right, err := tr.NodeStore.Get(ctx, n.RightID)
		if err != nil {
			return err
		}
		if left.Count()+right.Count() != n.Count() {
			t.Errorf("node %s has %d rows but its children hold %d and %d", n.ID, n.Count(), left.Count(), right.Count())
		}
		if left.Count() == 0 || right.Count() == 0 {
			t.Errorf("node %s was split into an empty side", n.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("traversing tree: %v", err)
	}
	root, err := tr.NodeStore.Get(ctx, tr.RootID)
	if err != nil {
		t.Fatalf("getting root node: %v", err)
	}
	if root.Count() != tbl.Count() {
		t.Errorf("expected the root to hold all %d rows, got %d", tbl.Count(), root.Count())
	}
}

func TestGrowReproducible(t *testing.T) {
	ctx := context.Background()
	tbl := randomTable(t, rand.New(rand.NewSource(4)), 100)
	p := Params{NMin: 2, MinLeaf: 1, NFeat: 2}
	first, err := Grow(ctx, tbl, p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("growing first tree: %v", err)
	}
	second, err := Grow(ctx, tbl, p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("growing second tree: %v", err)
	}
	if first.String() != second.String() {
		t.Error("expected equally seeded growths to produce the same tree")
	}
}

func TestGrowDeterministicWithoutSubsampling(t *testing.T) {
	// With every column considered at each node no random choice is
	// left, so differently seeded growths must agree.
	ctx := context.Background()
	tbl := randomTable(t, rand.New(rand.NewSource(10)), 100)
	p := Params{NMin: 2, MinLeaf: 1, NFeat: 0}
	first, err := Grow(ctx, tbl, p, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("growing first tree: %v", err)
	}
	second, err := Grow(ctx, tbl, p, rand.New(rand.NewSource(12)))
	if err != nil {
		t.Fatalf("growing second tree: %v", err)
	}
	if first.String() != second.String() {
		t.Error("expected growths without column subsampling to produce the same tree")
	}
}

func TestGrowInvalidParams(t *testing.T) {
	ctx := context.Background()
	tbl := separableTable(t)
	testCases := []struct {
		name     string
		tbl      *dataset.Table
		p        Params
		expected error
	}{
		{"nil table", nil, DefaultParams(), ErrEmptyDataset},
		{"empty table", mustTable(t, nil, nil), DefaultParams(), ErrEmptyDataset},
		{"zero nmin", tbl, Params{NMin: 0, MinLeaf: 1}, ErrInvalidNMin},
		{"zero minleaf", tbl, Params{NMin: 2, MinLeaf: 0}, ErrInvalidMinLeaf},
		{"nfeat beyond columns", tbl, Params{NMin: 2, MinLeaf: 1, NFeat: 2}, ErrInvalidNFeat},
		{"negative nfeat", tbl, Params{NMin: 2, MinLeaf: 1, NFeat: -1}, ErrInvalidNFeat},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Grow(ctx, tc.tbl, tc.p, rand.New(rand.NewSource(1)))
			if err != tc.expected {
				t.Errorf("expected error %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestSeedPushesRootTask(t *testing.T) {
	ctx := context.Background()
	tbl := separableTable(t)
	q := queue.New()
	defer q.Stop(ctx)
	ns := tree.NewMemoryNodeStore()
	tr, err := Seed(ctx, tbl, DefaultParams(), q, ns)
	if err != nil {
		t.Fatalf("seeding tree: %v", err)
	}
	pending, running, err := q.Count(ctx)
	if err != nil {
		t.Fatalf("counting queue tasks: %v", err)
	}
	if pending != 1 || running != 0 {
		t.Fatalf("expected 1 pending and 0 running tasks, got %d and %d", pending, running)
	}
	task, _, tcf, err := q.Pull(ctx)
	if err != nil {
		t.Fatalf("pulling root task: %v", err)
	}
	if task == nil {
		t.Fatal("expected the root task to be pullable")
	}
	defer tcf()
	if task.Node.ID != tr.RootID {
		t.Errorf("expected the pulled task to hold the root node %s, got %s", tr.RootID, task.Node.ID)
	}
	if task.Subset.Count() != tbl.Count() {
		t.Errorf("expected the root subset to hold all %d rows, got %d", tbl.Count(), task.Subset.Count())
	}
}
