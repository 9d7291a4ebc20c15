package thicket

import (
	"math/rand"
	"sort"
)

/*
Impurity returns the two-class Gini impurity p0*p1 of the given
binary label vector, where p0 and p1 are the fractions of labels
equal to 0 and greater than 0 respectively. It is 0 for a
single-class vector and reaches its maximum 0.25 when both classes
are equally represented. The impurity of an empty vector is defined
as 0.
*/
func Impurity(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	var ones int
	for _, l := range labels {
		if l > 0 {
			ones++
		}
	}
	p1 := float64(ones) / float64(len(labels))
	return (1 - p1) * p1
}

/*
ImpurityReduction returns the impurity reduction obtained by
partitioning the rows with the given parent labels into the left
and right label subsets:

	impurity(parent) - (|left|/|parent|*impurity(left) + |right|/|parent|*impurity(right))

The caller guarantees left and right partition parent. An empty
side contributes 0 to the weighted sum; the reduction over an empty
parent is 0.
*/
func ImpurityReduction(parent, left, right []int) float64 {
	if len(parent) == 0 {
		return 0
	}
	n := float64(len(parent))
	weighted := float64(len(left))/n*Impurity(left) + float64(len(right))/n*Impurity(right)
	return Impurity(parent) - weighted
}

/*
BestSplit takes one numeric feature column and the aligned label
vector and searches the candidate thresholds of the column: the
midpoints between every pair of adjacent distinct sorted values.
For each candidate it partitions the labels into the rows with a
value less than or equal to the threshold and the rest, and keeps
the threshold with the strictly greatest impurity reduction, so
ties keep the smallest threshold.

The second return value is false when the column yields no usable
split: it has fewer than 2 distinct values, or no candidate
achieves a positive impurity reduction.
*/
func BestSplit(column []float64, labels []int) (float64, bool) {
	values := distinctSorted(column)
	if len(values) < 2 {
		return 0, false
	}
	var best float64
	var found bool
	bestGain := 0.0
	for i, v := range values[1:] {
		threshold := (values[i] + v) / 2.0
		var left, right []int
		for j, cv := range column {
			if cv <= threshold {
				left = append(left, labels[j])
			} else {
				right = append(right, labels[j])
			}
		}
		gain := ImpurityReduction(labels, left, right)
		if gain > bestGain {
			bestGain = gain
			best = threshold
			found = true
		}
	}
	return best, found
}

func distinctSorted(column []float64) []float64 {
	values := make([]float64, len(column))
	copy(values, column)
	sort.Float64s(values)
	distinct := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			distinct = append(distinct, v)
		}
	}
	return distinct
}

// sampleColumns draws nfeat distinct column indices out of the
// given total uniformly at random without replacement, sorted
// ascending so that iteration order is deterministic for a given
// draw. When nfeat covers all columns no random source is
// consulted.
func sampleColumns(rng *rand.Rand, nfeat, columns int) []int {
	if nfeat >= columns {
		all := make([]int, columns)
		for i := range all {
			all[i] = i
		}
		return all
	}
	sampled := rng.Perm(columns)[:nfeat]
	sort.Ints(sampled)
	return sampled
}
