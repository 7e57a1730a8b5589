// SPDX-License-Identifier: MIT
// Package covariance: observation-covariance builder.

package covariance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Observation returns the full observation-noise covariance
//
//	diag(scale) · base · diag(scale)
//
// optionally pre/post multiplied by a fixed transform:
//
//	transform · (diag(scale) · base · diag(scale)) · transformᵀ
//
// when transform is non-nil (the common-baseline contrast application).
//
// The diagonal matrix is never materialized: entry (i,j) of the scaled
// product is scale[i]·base[i,j]·scale[j], computed directly on the upper
// triangle. With a Q×R transform the result is Q×Q; the transformed
// product is symmetric in exact arithmetic, so the off-diagonal pairs are
// averaged to cancel float noise before packing into symmetric storage.
//
// Errors:
//   - ErrEmptyInput         — base has order zero or scale is empty.
//   - ErrDimensionMismatch  — len(scale) differs from the base order, or
//     transform has a column count different from the base order.
//
// Complexity: O(R²) untransformed, O(Q·R² + Q²·R) with a transform.
func Observation(scale []float64, base mat.Symmetric, transform mat.Matrix) (*mat.SymDense, error) {
	n := base.SymmetricDim()
	if n == 0 || len(scale) == 0 {
		return nil, fmt.Errorf("Observation: %w", ErrEmptyInput)
	}
	if len(scale) != n {
		return nil, fmt.Errorf("Observation: %w", ErrDimensionMismatch)
	}

	// diag(s)·V·diag(s) via direct elementwise scaling, upper triangle only.
	svs := mat.NewSymDense(n, nil)
	var i, j int // fixed i→j order
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			svs.SetSym(i, j, scale[i]*base.At(i, j)*scale[j])
		}
	}

	if transform == nil {
		return svs, nil
	}

	q, c := transform.Dims()
	if c != n {
		return nil, fmt.Errorf("Observation: %w", ErrDimensionMismatch)
	}

	// L · SVS · Lᵀ, then repack into symmetric storage.
	var tmp, prod mat.Dense
	tmp.Mul(transform, svs)
	prod.Mul(&tmp, transform.T())

	out := mat.NewSymDense(q, nil)
	for i = 0; i < q; i++ {
		for j = i; j < q; j++ {
			out.SetSym(i, j, 0.5*(prod.At(i, j)+prod.At(j, i)))
		}
	}

	return out, nil
}
