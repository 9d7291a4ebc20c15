package queue

import (
	"fmt"

	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/tree"
)

// Task represents a tree.Node to be developed on a tree.Tree.
type Task struct {
	// The node to be developed
	Node *tree.Node
	// The subset of training rows that reached the node: the
	// whole training table for the root task, the left or right
	// side of the parent's split for every other task.
	Subset *dataset.Table
}

// ID returns a string that identifies the task, the ID of its Node.
func (t *Task) ID() string {
	return t.Node.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s}", t.Node.ID)
}
