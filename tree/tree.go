package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/thicketml/thicket/dataset"
)

/*
Tree represents a binary classification tree. It is composed of a
NodeStore where all its nodes are kept, the id for the root node of
the tree and the (nmin, minleaf, nfeat) parameters it was grown
with. A tree is read-only once grown.
*/
type Tree struct {
	NodeStore
	RootID  string
	NMin    int
	MinLeaf int
	NFeat   int
}

// New takes the ID for the root Node, a NodeStore and the growth
// parameters and returns a tree composed of the nodes in the
// NodeStore connected to the node with the given root ID.
func New(rootID string, nodeStore NodeStore, nmin, minleaf, nfeat int) *Tree {
	return &Tree{nodeStore, rootID, nmin, minleaf, nfeat}
}

/*
Classify takes a row of feature values and descends the tree from
the root, going left when the row's value at the current node's
split column is less than or equal to the split threshold and right
otherwise, until it reaches a terminal node, whose majority label it
returns. It returns an error if the tree is nil, a node cannot be
retrieved or the row has fewer columns than a split requires.
*/
func (t *Tree) Classify(ctx context.Context, row []float64) (int, error) {
	if t == nil {
		return 0, fmt.Errorf("nil tree cannot classify rows")
	}
	n, err := t.Get(ctx, t.RootID)
	if err != nil {
		return 0, fmt.Errorf("classifying row: retrieving node %v: %v", t.RootID, err)
	}
	if n == nil {
		return 0, fmt.Errorf("classifying row: root node %v not found", t.RootID)
	}
	for !n.Terminal() {
		if n.Split.Column >= len(row) {
			return 0, fmt.Errorf("classifying row: node %v splits on column %d but row has %d columns", n.ID, n.Split.Column, len(row))
		}
		childID := n.RightID
		if row[n.Split.Column] <= n.Split.Threshold {
			childID = n.LeftID
		}
		child, err := t.Get(ctx, childID)
		if err != nil {
			return 0, fmt.Errorf("classifying row: retrieving node %v: %v", childID, err)
		}
		if child == nil {
			return 0, fmt.Errorf("classifying row: node %v not found", childID)
		}
		n = child
	}
	return n.MajorityLabel(), nil
}

/*
ClassifyBatch applies Classify independently to each of the given
rows and returns the predicted labels in input row order.
*/
func (t *Tree) ClassifyBatch(ctx context.Context, rows [][]float64) ([]int, error) {
	predicted := make([]int, len(rows))
	for i, row := range rows {
		label, err := t.Classify(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("classifying row %d: %v", i, err)
		}
		predicted[i] = label
	}
	return predicted, nil
}

/*
Test takes a context.Context and a labeled table and returns the
prediction success rate of the tree over the table, or an error if a
row cannot be classified.
*/
func (t *Tree) Test(ctx context.Context, tbl *dataset.Table) (float64, error) {
	if t == nil || tbl.Count() == 0 {
		return 0.0, nil
	}
	predicted, err := t.ClassifyBatch(ctx, tbl.Rows())
	if err != nil {
		return 0.0, err
	}
	var hits float64
	for i, p := range predicted {
		if p == tbl.Label(i) {
			hits++
		}
	}
	return hits / float64(tbl.Count()), nil
}

// Traverse takes a context, a bottomup boolean and an
// error-returning function that takes a context and a node as
// parameters, and goes through the tree running the function with
// the context and every traversed node. Traverse will call the
// function with a parent node before calling it for its children if
// bottomup is false, and after its children if bottomup is true.
// If the given context times out or is cancelled, the context error
// is returned. If a node cannot be retrieved from the tree's node
// store, the obtained error is returned. If the call to the
// function returns an error, the traversing is aborted and the
// error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.NodeStore.Get(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, childID := range []string{n.LeftID, n.RightID} {
		if childID == "" {
			continue
		}
		child, err := t.NodeStore.Get(ctx, childID)
		if err != nil {
			return err
		}
		if err = t.traverse(ctx, child, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) String() string {
	return t.subtreeString(t.RootID)
}

func (t *Tree) subtreeString(nodeID string) string {
	n, err := t.NodeStore.Get(context.TODO(), nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	var result string
	if n.Terminal() {
		result = fmt.Sprintf("[%s] -> %d (%d/%d)\n", nodeID, n.MajorityLabel(), n.Zeros, n.Ones)
	} else {
		result = fmt.Sprintf("[%s] x%d <= %g\n|\n", nodeID, n.Split.Column, n.Split.Threshold)
	}
	for i, childID := range []string{n.LeftID, n.RightID} {
		if childID == "" {
			continue
		}
		for j, line := range strings.Split(t.subtreeString(childID), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == 1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
