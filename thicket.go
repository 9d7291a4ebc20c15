/*
Package thicket grows binary classification decision trees from
labeled numeric tables and combines bootstrap-trained trees into
majority-vote bagging ensembles.

Trees are grown through a work queue of node tasks instead of
native recursion, in the manner of a distributed grower: Seed
creates the root node and its task, workers running Work pull tasks
and branch nodes out until the queue drains. Grow and GrowBag wrap
this machinery with in-memory stores and queues for the common
single-process case.
*/
package thicket

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/queue"
	"github.com/thicketml/thicket/tree"
)

/*
Seed takes a context, a training table, growth parameters, a queue
and a node store and sets everything up so that workers that
consume from the queue afterwards grow a tree over the training
table. Specifically it will create the root node of the tree on
the node store and push a task to branch it out on the queue.
The function returns the tree that can be grown, or an error if
the parameters are invalid, the node cannot be created on the
store, or the task cannot be pushed to the queue (in the amount of
time allowed by the given context).
*/
func Seed(ctx context.Context, tbl *dataset.Table, p Params, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	if err := checkParams(tbl, p); err != nil {
		return nil, err
	}
	n := &tree.Node{}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	task := &queue.Task{Node: n, Subset: tbl}
	t := tree.New(n.ID, ns, p.NMin, p.MinLeaf, p.nfeatOrAll(tbl.Columns()))
	err = q.Push(ctx, task)
	if err != nil {
		ns.Delete(ctx, n)
		return nil, err
	}
	return t, nil
}

/*
BranchOut takes a context, a task, a tree and a random source, and
develops the node in the task using the task's row subset. It
returns a pair of tasks to develop the resulting children nodes, or
no tasks when the node is terminal, or an error.

The stopping rules are checked in order: an empty subset, a subset
with fewer rows than nmin, a pure subset, and a subset with fewer
rows than minleaf each leave the node terminal. Otherwise nfeat
columns are sampled and searched, and the node is split by the
(column, threshold) pair with the greatest impurity reduction over
the full label vector; if no sampled column yields a positive
reduction the node is terminal after all.

The node is written to the tree's node store exactly once, with its
label counts and (for internal nodes) its split and children ids
already final.
*/
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, rng *rand.Rand) (tasks []*queue.Task, e error) {
	sub := task.Subset
	task.Node.Zeros, task.Node.Ones = sub.LabelCounts()
	defer func() {
		err := t.NodeStore.Store(ctx, task.Node)
		if e == nil {
			e = err
		}
	}()
	n := sub.Count()
	if n == 0 || n < t.NMin {
		return nil, nil
	}
	if sub.Gini() == 0 {
		return nil, nil
	}
	if n < t.MinLeaf {
		return nil, nil
	}
	columns := sampleColumns(rng, t.NFeat, sub.Columns())
	selected := -1
	var selThreshold, selGain float64
	for _, c := range columns {
		threshold, ok := BestSplit(sub.Column(c), sub.Labels())
		if !ok {
			continue
		}
		left, right := sub.Split(c, threshold)
		gain := ImpurityReduction(sub.Labels(), left.Labels(), right.Labels())
		if selected < 0 || gain > selGain {
			selected = c
			selThreshold = threshold
			selGain = gain
		}
	}
	if selected < 0 {
		return nil, nil
	}
	left, right := sub.Split(selected, selThreshold)
	children := []*queue.Task{
		{Node: &tree.Node{ParentID: task.Node.ID}, Subset: left},
		{Node: &tree.Node{ParentID: task.Node.ID}, Subset: right},
	}
	for _, ct := range children {
		if err := t.NodeStore.Create(ctx, ct.Node); err != nil {
			return nil, err
		}
	}
	task.Node.Split = &tree.Split{Column: selected, Threshold: selThreshold}
	task.Node.LeftID = children[0].Node.ID
	task.Node.RightID = children[1].Node.ID
	return children, nil
}

// Work takes a context, a tree, a queue, a random source and an
// emptyQueueSleep duration and enters a loop in which it:
//   - pulls a task from the queue,
//   - branches its node out into new subnodes using BranchOut,
//   - pushes the tasks for the new subnodes into the queue,
//   - marks the task as completed on the queue.
//
// If at some point no task can be pulled from the queue and the sum
// of tasks running and pending on the queue is 0, the worker ends
// returning nil. If no task can be pulled but the sum is not 0,
// then the worker will sleep for the given emptyQueueSleep duration
// and then retry.
//
// Work will return a non-nil error if the given context times out
// or is cancelled, if BranchOut returns a non-nil error or if an
// operation with the given queue returns a non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, rng *rand.Rand, emptyQueueSleep time.Duration) error {
	for {
		task, tctx, tcf, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			pending, running, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if pending+running == 0 {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		mctx, cancel := mergeCtxCancel(tctx, ctx)
		err = workTask(mctx, task, t, q, rng)
		cancel()
		tcf()
		if err != nil {
			return err
		}
		err = ctx.Err()
		if err != nil {
			return err
		}
	}
	return nil
}

/*
Grow takes a context, a training table, growth parameters and a
random source and grows a binary classification tree over the
table, backed by an in-memory node store, draining the work queue
with a single worker before returning. A nil random source is
replaced by a time-seeded one; pass a seeded source for
reproducible growth.
It returns an error if the parameters are invalid or the context
expires before the tree is fully grown.
*/
func Grow(ctx context.Context, tbl *dataset.Table, p Params, rng *rand.Rand) (*tree.Tree, error) {
	if rng == nil {
		rng = newRand()
	}
	q := queue.New()
	defer q.Stop(ctx)
	t, err := Seed(ctx, tbl, p, q, tree.NewMemoryNodeStore())
	if err != nil {
		return nil, err
	}
	if err = Work(ctx, t, q, rng, time.Millisecond); err != nil {
		return nil, err
	}
	return t, nil
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, rng *rand.Rand) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := BranchOut(ctx, task, t, rng)
	if err != nil {
		return err
	}
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

func mergeCtxCancel(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	mctx, cancel := context.WithCancel(ctx1)
	go func() {
		select {
		case <-mctx.Done():
		case <-ctx2.Done():
			cancel()
		}
	}()
	return mctx, cancel
}

type lockedRandSource struct {
	lock sync.Mutex
	src  rand.Source
}

func (r *lockedRandSource) Int63() int64 {
	r.lock.Lock()
	ret := r.src.Int63()
	r.lock.Unlock()
	return ret
}

func (r *lockedRandSource) Seed(seed int64) {
	r.lock.Lock()
	r.src.Seed(seed)
	r.lock.Unlock()
}

// newRand returns a time-seeded random source safe for concurrent
// use by multiple goroutines.
func newRand() *rand.Rand {
	return rand.New(&lockedRandSource{src: rand.NewSource(time.Now().UnixNano())})
}
