package microgbt

import "errors"

// Errors surfaced by [GBT] operations and [LoadCSV]. All failures are
// reported at the operation boundary; nothing is retried internally.
var (
	// ErrInvalidParam indicates a configuration value outside its domain.
	ErrInvalidParam = errors.New("microgbt: invalid parameter")

	// ErrShapeMismatch indicates disagreeing row counts between a matrix
	// and its label vector, disagreeing feature counts between the train
	// and validation matrices, or a prediction input of the wrong length.
	ErrShapeMismatch = errors.New("microgbt: shape mismatch")

	// ErrEmptyDataset indicates a training set with zero rows or zero
	// features, an empty validation set, or a CSV file without data rows.
	ErrEmptyDataset = errors.New("microgbt: empty dataset")

	// ErrInvalidLabels indicates labels outside the objective's domain:
	// non-finite values, or values outside [0, 1] for binary classification.
	ErrInvalidLabels = errors.New("microgbt: invalid labels")

	// ErrIndexOutOfRange indicates a Predict call referencing a tree
	// index at or beyond the number of trees grown.
	ErrIndexOutOfRange = errors.New("microgbt: tree index out of range")
)
