package thicket

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/tree"
	"golang.org/x/sync/errgroup"
)

/*
GrowBag takes a context, a training table, growth parameters, the
number of trees m and a random source, and grows a bagging
ensemble: m independent trees, each grown over its own bootstrap
resample of the training table (as many rows as the original, drawn
with replacement).

Trees are grown concurrently, up to the given number of workers at
a time (0 meaning one goroutine per tree). Each tree derives its
own random source from the given one before any growing starts, so
the result is reproducible for a seeded source regardless of
scheduling, and no source is shared across workers.

The returned slice holds the m trees in growth order. It returns an
error if m is below 1, the parameters are invalid or the context
expires.
*/
func GrowBag(ctx context.Context, tbl *dataset.Table, p Params, m int, rng *rand.Rand, workers int) ([]*tree.Tree, error) {
	if m < 1 {
		return nil, ErrInvalidTreeCount
	}
	if err := checkParams(tbl, p); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = newRand()
	}
	seeds := make([]int64, m)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	trees := make([]*tree.Tree, m)
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range trees {
		i := i
		g.Go(func() error {
			r := rand.New(rand.NewSource(seeds[i]))
			t, err := Grow(gctx, tbl.Bootstrap(r), p, r)
			if err != nil {
				return fmt.Errorf("growing tree %d of %d: %v", i+1, m, err)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

/*
ClassifyBag takes a context, a slice of feature rows, an ensemble
of trees and a random source, classifies every row with every tree
and returns the majority vote per row, in input row order. The
label with strictly more votes wins; an exact tie is broken
uniformly at random between the two labels using the given source
(a nil source is replaced by a time-seeded one).
*/
func ClassifyBag(ctx context.Context, rows [][]float64, trees []*tree.Tree, rng *rand.Rand) ([]int, error) {
	if len(trees) == 0 {
		return nil, ErrInvalidTreeCount
	}
	if rng == nil {
		rng = newRand()
	}
	predicted := make([]int, len(rows))
	for i, row := range rows {
		var votes int
		for _, t := range trees {
			label, err := t.Classify(ctx, row)
			if err != nil {
				return nil, fmt.Errorf("classifying row %d: %v", i, err)
			}
			votes += label
		}
		switch {
		case 2*votes > len(trees):
			predicted[i] = 1
		case 2*votes == len(trees):
			predicted[i] = rng.Intn(2)
		}
	}
	return predicted, nil
}
