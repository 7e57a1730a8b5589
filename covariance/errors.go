// SPDX-License-Identifier: MIT
// Package covariance: sentinel error set. Callers match via errors.Is;
// facades may wrap with an operation tag but never replace the sentinel.

package covariance

import "errors"

var (
	// ErrEmptyInput indicates a required matrix or slice argument had zero
	// size.
	ErrEmptyInput = errors.New("covariance: empty input")

	// ErrDimensionMismatch indicates incompatible operand shapes (scale
	// length vs. base order, transform columns vs. base order, standard
	// error matrix vs. effect matrix).
	ErrDimensionMismatch = errors.New("covariance: dimension mismatch")

	// ErrNotPositiveDefinite is returned by Precision when the observation
	// covariance cannot be Cholesky-factored.
	ErrNotPositiveDefinite = errors.New("covariance: matrix not positive definite")
)
