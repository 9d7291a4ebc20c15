package json

import (
	"encoding/json"

	"github.com/thicketml/thicket/tree"
)

/*
NodeEncodeDecoder is an interface for objects that allow encoding
nodes into slices of bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	// Encode receives a *tree.Node and returns a slice of bytes
	// with the node encoded or an error if the encoding could
	// not be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	// Decode receives a slice of bytes and returns a *tree.Node
	// decoded from the slice of bytes or an error if the
	// decoding could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type node struct {
	ID        string   `json:"id"`
	ParentID  string   `json:"pId,omitempty"`
	LeftID    string   `json:"lId,omitempty"`
	RightID   string   `json:"rId,omitempty"`
	Column    *int     `json:"col,omitempty"`
	Threshold *float64 `json:"t,omitempty"`
	Zeros     int      `json:"n0"`
	Ones      int      `json:"n1"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes nodes
as JSON objects.
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:       n.ID,
		ParentID: n.ParentID,
		LeftID:   n.LeftID,
		RightID:  n.RightID,
		Zeros:    n.Zeros,
		Ones:     n.Ones,
	}
	if n.Split != nil {
		column := n.Split.Column
		threshold := n.Split.Threshold
		jn.Column = &column
		jn.Threshold = &threshold
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	n := &tree.Node{
		ID:       jn.ID,
		ParentID: jn.ParentID,
		LeftID:   jn.LeftID,
		RightID:  jn.RightID,
		Zeros:    jn.Zeros,
		Ones:     jn.Ones,
	}
	if jn.Column != nil && jn.Threshold != nil {
		n.Split = &tree.Split{Column: *jn.Column, Threshold: *jn.Threshold}
	}
	return n, nil
}
