package tree

/*
Split describes how an internal node divides its rows: rows whose
value at Column is less than or equal to Threshold go to the left
child, the rest go to the right child.
*/
type Split struct {
	Column    int
	Threshold float64
}

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree
	ParentID string
	// The IDs of the left and right children of the node.
	// They are empty on terminal nodes and both set on
	// internal nodes.
	LeftID  string
	RightID string
	// The split applied to the node's rows to produce its
	// children. It is nil exactly when the node is terminal.
	Split *Split
	// The number of rows labeled 0 and labeled 1 in the subset
	// of training rows that reached this node. Predictions for
	// terminal nodes are derived from these counts at
	// classification time.
	Zeros int
	Ones  int
}

// Terminal reports whether the node is a leaf: it has no split and
// no children.
func (n *Node) Terminal() bool {
	return n.Split == nil
}

// Count returns the number of training rows in the node's subset.
func (n *Node) Count() int {
	return n.Zeros + n.Ones
}

/*
MajorityLabel returns the label predicted by the node: 1 when
strictly more than half of its rows are labeled 1, and 0 otherwise.
An exact tie resolves to 0, as does an empty node.
*/
func (n *Node) MajorityLabel() int {
	total := n.Zeros + n.Ones
	if total == 0 {
		return 0
	}
	if float64(n.Ones)/float64(total) > 0.5 {
		return 1
	}
	return 0
}
