// Package likelihood: sentinel error set, matched via errors.Is.

package likelihood

import "errors"

var (
	// ErrEmptyInput indicates an empty effect matrix or an empty prior
	// collection.
	ErrEmptyInput = errors.New("likelihood: empty input")

	// ErrDimensionMismatch indicates incompatible shapes between the
	// effect matrix, standard errors, noise covariance, priors or
	// precomputed roots.
	ErrDimensionMismatch = errors.New("likelihood: dimension mismatch")
)
