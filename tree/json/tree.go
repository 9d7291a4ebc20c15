package json

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/thicketml/thicket/tree"
)

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree, a
NodeEncodeDecoder and an io.Writer and serializes the given tree as
JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "rootID": a string with the ID of the node at the root of the tree
  - "nmin", "minleaf", "nfeat": the parameters the tree was grown with
  - "nodes": an array containing the nodes that can be traversed on
    the tree, serialized by the given NodeEncodeDecoder.

An error is returned if the tree cannot be traversed, serialized or
written onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, w io.Writer) error {
	header := fmt.Sprintf(`{"rootID":%q,"nmin":%d,"minleaf":%d,"nfeat":%d,"nodes":[`, t.RootID, t.NMin, t.MinLeaf, t.NFeat)
	if _, err := w.Write([]byte(header)); err != nil {
		return err
	}
	var i int
	err := t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		if i != 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		i++
		jn, err := ned.Encode(n)
		if err != nil {
			return err
		}
		_, err = w.Write(jn)
		return err
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONTree takes a context.Context, a pointer to a tree.Tree, a
NodeEncodeDecoder and an io.Reader and unmarshals the contents of
the io.Reader onto the given tree: its root ID and parameters are
set and its nodes are stored on the tree's NodeStore.
An error is returned if the JSON cannot be read from the io.Reader
or unmarshalled onto the tree.
*/
func ReadJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, r io.Reader) error {
	dec := json.NewDecoder(r)
	jt := &struct {
		RootID  string             `json:"rootID"`
		NMin    int                `json:"nmin"`
		MinLeaf int                `json:"minleaf"`
		NFeat   int                `json:"nfeat"`
		Nodes   []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return err
	}
	if jt.RootID == "" {
		return fmt.Errorf("no root node id available")
	}
	t.RootID = jt.RootID
	t.NMin = jt.NMin
	t.MinLeaf = jt.MinLeaf
	t.NFeat = jt.NFeat
	for _, jn := range jt.Nodes {
		n, err := ned.Decode(*jn)
		if err != nil {
			return err
		}
		if err = t.NodeStore.Store(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

/*
WriteJSONForest takes a context.Context, a slice of trees, a
NodeEncodeDecoder and an io.Writer and serializes the trees onto
the io.Writer as a JSON object with a "trees" field holding the
ordered array of trees, each serialized as by WriteJSONTree.
*/
func WriteJSONForest(ctx context.Context, trees []*tree.Tree, ned NodeEncodeDecoder, w io.Writer) error {
	if _, err := w.Write([]byte(`{"trees":[`)); err != nil {
		return err
	}
	for i, t := range trees {
		if i != 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		if err := WriteJSONTree(ctx, t, ned, w); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONForest takes a context.Context, a function returning a fresh
tree.NodeStore for each tree, a NodeEncodeDecoder and an io.Reader
and unmarshals an ordered sequence of trees, each backed by its own
node store, from the JSON produced by WriteJSONForest.
*/
func ReadJSONForest(ctx context.Context, newStore func() tree.NodeStore, ned NodeEncodeDecoder, r io.Reader) ([]*tree.Tree, error) {
	dec := json.NewDecoder(r)
	jf := &struct {
		Trees []*json.RawMessage `json:"trees"`
	}{}
	err := dec.Decode(jf)
	if err != nil {
		return nil, err
	}
	trees := make([]*tree.Tree, 0, len(jf.Trees))
	for i, jt := range jf.Trees {
		t := &tree.Tree{NodeStore: newStore()}
		if err = ReadJSONTree(ctx, t, ned, bytes.NewReader(*jt)); err != nil {
			return nil, fmt.Errorf("unmarshalling tree %d: %v", i, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}
