/*
Package metrics evaluates binary predictions against observed
labels, with label 1 as the positive class.
*/
package metrics

import (
	"fmt"
)

/*
ConfusionMatrix is the 2x2 contingency table of observed versus
predicted binary labels.
*/
type ConfusionMatrix struct {
	TP int
	TN int
	FP int
	FN int
}

/*
Evaluate takes two aligned label sequences, observed and predicted,
and returns their confusion matrix, or an error if the sequences
have different lengths.
*/
func Evaluate(observed, predicted []int) (*ConfusionMatrix, error) {
	if len(observed) != len(predicted) {
		return nil, fmt.Errorf("evaluating predictions: %d observed labels but %d predictions", len(observed), len(predicted))
	}
	cm := &ConfusionMatrix{}
	for i, o := range observed {
		cm.Add(o, predicted[i])
	}
	return cm, nil
}

// Add records one (observed, predicted) label pair on the matrix.
func (cm *ConfusionMatrix) Add(observed, predicted int) {
	switch {
	case observed == 1 && predicted == 1:
		cm.TP++
	case observed == 1:
		cm.FN++
	case predicted == 1:
		cm.FP++
	default:
		cm.TN++
	}
}

// Total returns the number of recorded label pairs.
func (cm *ConfusionMatrix) Total() int {
	return cm.TP + cm.TN + cm.FP + cm.FN
}

// Accuracy returns (TP+TN)/total, or 0 for an empty matrix.
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.TP+cm.TN) / float64(total)
}

// Precision returns TP/(TP+FP), or 0 when nothing was predicted
// positive.
func (cm *ConfusionMatrix) Precision() float64 {
	if cm.TP+cm.FP == 0 {
		return 0
	}
	return float64(cm.TP) / float64(cm.TP+cm.FP)
}

// Recall returns TP/(TP+FN), or 0 when nothing positive was
// observed.
func (cm *ConfusionMatrix) Recall() float64 {
	if cm.TP+cm.FN == 0 {
		return 0
	}
	return float64(cm.TP) / float64(cm.TP+cm.FN)
}

func (cm *ConfusionMatrix) String() string {
	return fmt.Sprintf(
		"            predicted 1  predicted 0\nobserved 1  %11d  %11d\nobserved 0  %11d  %11d",
		cm.TP, cm.FN, cm.FP, cm.TN)
}
