package dataset

import "errors"

// Domain errors for dataset assembly. All are raised during validation,
// before any record has been produced.
var (
	// ErrShape indicates an input table whose dimensions violate a
	// stage's precondition.
	ErrShape = errors.New("dataset: shape mismatch")

	// ErrConfig indicates an invalid windowing parameter.
	ErrConfig = errors.New("dataset: invalid configuration")

	// ErrInsufficientData indicates a trajectory that yields fewer
	// windows than the requested train/test split needs.
	ErrInsufficientData = errors.New("dataset: insufficient data")
)
