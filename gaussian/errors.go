// SPDX-License-Identifier: MIT
// Package gaussian: sentinel error set.
// All fallible functions in this package return these sentinels (optionally
// wrapped with an operation tag via fmt.Errorf("Op: %w", err)); tests and
// callers match them with errors.Is.

package gaussian

import "errors"

var (
	// ErrEmptyInput indicates a required slice or matrix argument had zero
	// length where at least one element is needed.
	ErrEmptyInput = errors.New("gaussian: empty input")

	// ErrDimensionMismatch indicates parallel inputs (value/mean/variance
	// slices, point dimension vs. covariance order) disagree in length.
	ErrDimensionMismatch = errors.New("gaussian: dimension mismatch")

	// ErrNotPositiveDefinite is returned by NewInvCholRoot when Cholesky
	// factorization of the covariance fails. Density evaluators never
	// return it: they absorb the failure into the point-mass fallback.
	ErrNotPositiveDefinite = errors.New("gaussian: covariance not positive definite")
)
