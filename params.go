package thicket

import (
	"github.com/thicketml/thicket/dataset"
)

/*
Params holds the structural stopping parameters for growing a tree:
  - NMin: the minimum number of rows a node must have for a split to
    be attempted on it. Must be at least 1.
  - MinLeaf: the row count floor associated with leaf acceptability.
    Must be at least 1. It is checked against the row count of the
    node being split, not against the sizes of the would-be
    children.
  - NFeat: the number of feature columns sampled uniformly at random
    without replacement as split candidates at each node. A value of
    0 means all columns; it may not exceed the column count of the
    training table.
*/
type Params struct {
	NMin    int
	MinLeaf int
	NFeat   int
}

/*
DefaultParams returns the default growth parameters: nmin 2,
minleaf 2 and every column considered at each split.
*/
func DefaultParams() Params {
	return Params{NMin: 2, MinLeaf: 2}
}

/*
ParamError is the error returned when a tree or ensemble is
requested with invalid parameters. It is raised synchronously at
call entry; no partially grown tree is ever visible to the caller.
*/
type ParamError string

func (pe ParamError) Error() string {
	return string(pe)
}

const (
	// ErrEmptyDataset is returned when growing is requested on a
	// nil or empty training table.
	ErrEmptyDataset = ParamError("cannot grow from a nil or empty dataset")
	// ErrInvalidNMin is returned when nmin is below 1.
	ErrInvalidNMin = ParamError("nmin must be at least 1")
	// ErrInvalidMinLeaf is returned when minleaf is below 1.
	ErrInvalidMinLeaf = ParamError("minleaf must be at least 1")
	// ErrInvalidNFeat is returned when nfeat exceeds the number
	// of feature columns in the training table.
	ErrInvalidNFeat = ParamError("nfeat cannot exceed the number of feature columns")
	// ErrInvalidTreeCount is returned when an ensemble of fewer
	// than 1 tree is requested.
	ErrInvalidTreeCount = ParamError("an ensemble needs at least 1 tree")
)

func checkParams(tbl *dataset.Table, p Params) error {
	if tbl == nil || tbl.Count() == 0 || tbl.Columns() == 0 {
		return ErrEmptyDataset
	}
	if p.NMin < 1 {
		return ErrInvalidNMin
	}
	if p.MinLeaf < 1 {
		return ErrInvalidMinLeaf
	}
	if p.NFeat < 0 || p.NFeat > tbl.Columns() {
		return ErrInvalidNFeat
	}
	return nil
}

// nfeatOrAll resolves the NFeat value against the column count of
// the training table: 0 means all columns.
func (p Params) nfeatOrAll(columns int) int {
	if p.NFeat == 0 {
		return columns
	}
	return p.NFeat
}
