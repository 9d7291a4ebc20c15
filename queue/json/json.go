/*
Package json provides a queue task codec that serializes tasks as
JSON documents, with the task's node referenced by id on a
tree.NodeStore and its row subset embedded in the document.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/queue"
	"github.com/thicketml/thicket/tree"
)

/*
TaskEncodeDecoder is an interface for objects that allow encoding
tasks as slices of bytes and decoding them back to tasks. It is
used to serialize tasks into a representation to store on redis.
*/
type TaskEncodeDecoder interface {

	// Encode receives a *queue.Task and returns a slice of bytes
	// with the task encoded or an error if the encoding could
	// not be performed for some reason.
	Encode(context.Context, *queue.Task) ([]byte, error)

	// Decode receives a slice of bytes and returns a *queue.Task
	// decoded from the slice of bytes or an error if the
	// decoding could not be performed for some reason.
	Decode(context.Context, []byte) (*queue.Task, error)
}

type jsonEncodeDecoder struct {
	ns tree.NodeStore
}

type jsonTask struct {
	NodeID   string      `json:"id"`
	Features [][]float64 `json:"rows"`
	Labels   []int       `json:"labels"`
}

// New returns a TaskEncodeDecoder that resolves task nodes against
// the given node store.
func New(ns tree.NodeStore) TaskEncodeDecoder {
	return &jsonEncodeDecoder{ns}
}

func (jed *jsonEncodeDecoder) Encode(ctx context.Context, t *queue.Task) ([]byte, error) {
	jt := &jsonTask{
		NodeID:   t.ID(),
		Features: t.Subset.Rows(),
		Labels:   t.Subset.Labels(),
	}
	return json.Marshal(jt)
}

func (jed *jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*queue.Task, error) {
	jt := &jsonTask{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, fmt.Errorf("decoding task from json: %v", err)
	}
	t := &queue.Task{}
	t.Node, err = jed.ns.Get(ctx, jt.NodeID)
	if err != nil {
		return nil, fmt.Errorf("decoding json task: getting task node: %v", err)
	}
	if t.Node == nil {
		return nil, fmt.Errorf("decoding json task: could not get node %q from node store", jt.NodeID)
	}
	t.Subset, err = dataset.New(jt.Features, jt.Labels)
	if err != nil {
		return nil, fmt.Errorf("decoding json task: rebuilding task subset: %v", err)
	}
	return t, nil
}
