// SPDX-License-Identifier: MIT
// Package covariance: conjugate Gaussian-Gaussian posterior update.

package covariance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Precision inverts a symmetric positive-definite covariance via its
// Cholesky factorization (the SPD-aware inverse; never use a generic LU
// inverse on a covariance).
//
// Errors:
//   - ErrEmptyInput          — sigma has order zero.
//   - ErrNotPositiveDefinite — Cholesky factorization failed.
func Precision(sigma mat.Symmetric) (*mat.SymDense, error) {
	if sigma.SymmetricDim() == 0 {
		return nil, fmt.Errorf("Precision: %w", ErrEmptyInput)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return nil, fmt.Errorf("Precision: %w", ErrNotPositiveDefinite)
	}

	var out mat.SymDense
	if err := chol.InverseTo(&out); err != nil {
		return nil, fmt.Errorf("Precision: %w", err)
	}

	return &out, nil
}

// PosteriorCov returns the posterior covariance of the conjugate update:
//
//	U₁ = U · (V⁻¹·U + I)⁻¹
//
// where vinv is the R×R noise precision and u the R×R prior covariance.
//
// A singular system (V⁻¹·U + I not invertible) is a caller/data error;
// the inversion failure from the numerical library is propagated as-is,
// wrapped only with the operation tag.
//
// Complexity: O(R³).
func PosteriorCov(vinv, u mat.Matrix) (*mat.Dense, error) {
	var s mat.Dense
	s.Mul(vinv, u)
	n, _ := s.Dims()
	for i := 0; i < n; i++ {
		s.Set(i, i, s.At(i, i)+1.0)
	}

	var sinv mat.Dense
	if err := sinv.Inverse(&s); err != nil {
		return nil, fmt.Errorf("PosteriorCov: %w", err)
	}

	u1 := &mat.Dense{}
	u1.Mul(u, &sinv)

	return u1, nil
}

// PosteriorMean returns the posterior mean of the conjugate update:
//
//	μ₁ = U₁ · V⁻¹ · b̂
//
// u1 must be the posterior covariance produced by PosteriorCov for the
// same vinv. Shape violations panic per gonum convention.
func PosteriorMean(bhat mat.Vector, vinv, u1 mat.Matrix) *mat.VecDense {
	var t mat.VecDense
	t.MulVec(vinv, bhat)

	out := &mat.VecDense{}
	out.MulVec(u1, &t)

	return out
}

// PosteriorMeanBatch applies PosteriorMean to every column of b (R×J) in
// two matrix multiplies, for the common-covariance path where one (vinv,
// u1) pair serves all units. Returns an R×J matrix of posterior means.
func PosteriorMeanBatch(b *mat.Dense, vinv, u1 mat.Matrix) *mat.Dense {
	var t mat.Dense
	t.Mul(vinv, b)

	out := &mat.Dense{}
	out.Mul(u1, &t)

	return out
}
