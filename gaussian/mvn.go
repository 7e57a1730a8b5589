// SPDX-License-Identifier: MIT
// Package gaussian: multivariate normal density with reusable
// inverse-Cholesky roots and the point-mass fallback for degenerate
// covariances.

package gaussian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InvCholRoot is a reusable factorization of an R×R covariance Σ for
// multivariate normal density evaluation: the lower-triangular matrix
// rooti = L⁻¹ where Σ = L·Lᵀ, together with Σ log(diag(rooti)).
//
// Construct once, evaluate many: the dominant cost of a batched density
// (one O(R³) factorization) is paid in the constructor, and every
// subsequent evaluation is a triangular multiply, O(R²).
//
// The zero value is not usable; obtain roots from NewInvCholRoot or
// NewInvCholRootFromLower.
type InvCholRoot struct {
	dim    int
	rooti  *mat.TriDense // lower triangular, L⁻¹
	logDet float64       // Σ log(diag(rooti)) = −½ log det Σ
}

// NewInvCholRoot factors the covariance sigma and returns its
// inverse-Cholesky root.
//
// Errors:
//   - ErrEmptyInput          — sigma has order zero.
//   - ErrNotPositiveDefinite — Cholesky factorization failed.
//
// Unlike the density evaluators, the constructor surfaces factorization
// failure instead of absorbing it: a caller precomputing roots needs to
// know which component covariances are degenerate.
func NewInvCholRoot(sigma mat.Symmetric) (*InvCholRoot, error) {
	n := sigma.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("NewInvCholRoot: %w", ErrEmptyInput)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return nil, fmt.Errorf("NewInvCholRoot: %w", ErrNotPositiveDefinite)
	}

	var lower mat.TriDense
	chol.LTo(&lower)

	rooti := mat.NewTriDense(n, mat.Lower, nil)
	if err := rooti.InverseTri(&lower); err != nil {
		// A successful Cholesky factor is invertible up to underflow;
		// treat a failed triangular inversion the same as a failed factor.
		return nil, fmt.Errorf("NewInvCholRoot: %w", ErrNotPositiveDefinite)
	}

	return &InvCholRoot{dim: n, rooti: rooti, logDet: triLogDiagSum(rooti)}, nil
}

// NewInvCholRootFromLower wraps an externally computed lower-triangular
// inverse-Cholesky factor (entries above the diagonal are ignored). Use
// this when the root was produced elsewhere, e.g. backsolve(chol(Σ), I)
// transposed.
//
// Errors:
//   - ErrEmptyInput         — root has zero rows.
//   - ErrDimensionMismatch  — root is not square.
func NewInvCholRootFromLower(root mat.Matrix) (*InvCholRoot, error) {
	r, c := root.Dims()
	if r == 0 {
		return nil, fmt.Errorf("NewInvCholRootFromLower: %w", ErrEmptyInput)
	}
	if r != c {
		return nil, fmt.Errorf("NewInvCholRootFromLower: %w", ErrDimensionMismatch)
	}

	t := mat.NewTriDense(r, mat.Lower, nil)
	for i := 0; i < r; i++ {
		for j := 0; j <= i; j++ {
			t.SetTri(i, j, root.At(i, j))
		}
	}

	return &InvCholRoot{dim: r, rooti: t, logDet: triLogDiagSum(t)}, nil
}

// Dim returns the order R of the factored covariance.
func (r *InvCholRoot) Dim() int { return r.dim }

// triLogDiagSum returns Σ log(diag(t)).
func triLogDiagSum(t *mat.TriDense) float64 {
	n, _ := t.Triangle()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Log(t.At(i, i))
	}

	return sum
}

// logDensity evaluates the MVN log-density of x against the root.
// d and z are caller-owned scratch vectors, reused across batch columns.
func (r *InvCholRoot) logDensity(x, mean mat.Vector, d, z *mat.VecDense) float64 {
	d.SubVec(x, mean)
	z.MulVec(r.rooti, d)

	return -0.5*float64(r.dim)*log2Pi - 0.5*mat.Dot(z, z) + r.logDet
}

// Dmvnorm evaluates the multivariate normal density N(x; mean, sigma),
// in log form when logForm is true.
//
// Degenerate-covariance policy (the point-mass fallback): if sigma cannot
// be Cholesky-factored, the distribution is treated as concentrated
// entirely at its mean — the result is +Inf when Σ|x−mean| < PointMassTol
// and otherwise 0 (−Inf in log form). No error is ever returned; callers
// that must distinguish degeneracy should use NewInvCholRoot directly.
//
// Mismatched dimensions panic (programmer error), matching gonum's own
// convention for vector/matrix shape violations.
func Dmvnorm(x, mean mat.Vector, sigma mat.Symmetric, logForm bool) float64 {
	root, err := NewInvCholRoot(sigma)
	if err != nil {
		return pointMassDensity(x, mean, logForm)
	}

	return DmvnormRoot(x, mean, root, logForm)
}

// DmvnormRoot evaluates the MVN density of a single point against a
// precomputed inverse-Cholesky root.
func DmvnormRoot(x, mean mat.Vector, root *InvCholRoot, logForm bool) float64 {
	var d, z mat.VecDense
	out := root.logDensity(x, mean, &d, &z)
	if !logForm {
		out = math.Exp(out)
	}

	return out
}

// DmvnormBatch evaluates the MVN density for every column of X (R×J)
// against a single covariance, factoring it exactly once. Returns a slice
// of J densities, in log form when logForm is true.
//
// The point-mass fallback applies per column: with a degenerate sigma,
// columns within PointMassTol of the mean evaluate to +Inf, all others to
// 0 (−Inf in log form).
func DmvnormBatch(x *mat.Dense, mean mat.Vector, sigma mat.Symmetric, logForm bool) []float64 {
	_, cols := x.Dims()
	out := make([]float64, cols)

	root, err := NewInvCholRoot(sigma)
	if err != nil {
		for j := 0; j < cols; j++ {
			out[j] = pointMassDensity(x.ColView(j), mean, logForm)
		}

		return out
	}

	batchLogDensity(out, x, mean, root)
	if !logForm {
		for j := range out {
			out[j] = math.Exp(out[j])
		}
	}

	return out
}

// DmvnormBatchRoot is DmvnormBatch against a precomputed root.
func DmvnormBatchRoot(x *mat.Dense, mean mat.Vector, root *InvCholRoot, logForm bool) []float64 {
	_, cols := x.Dims()
	out := make([]float64, cols)

	batchLogDensity(out, x, mean, root)
	if !logForm {
		for j := range out {
			out[j] = math.Exp(out[j])
		}
	}

	return out
}

// batchLogDensity fills out[j] with the log-density of column j of x,
// reusing two scratch vectors across the whole batch.
func batchLogDensity(out []float64, x *mat.Dense, mean mat.Vector, root *InvCholRoot) {
	var d, z mat.VecDense
	for j := range out { // fixed column order
		out[j] = root.logDensity(x.ColView(j), mean, &d, &z)
	}
}

// pointMassDensity implements the degenerate-covariance substitute:
// +Inf at the mean (within PointMassTol in absolute-difference sum),
// zero density everywhere else.
func pointMassDensity(x, mean mat.Vector, logForm bool) float64 {
	diff := 0.0
	for i := 0; i < x.Len(); i++ {
		diff += math.Abs(x.AtVec(i) - mean.AtVec(i))
	}
	if diff < PointMassTol {
		return math.Inf(1)
	}
	if logForm {
		return math.Inf(-1)
	}

	return 0.0
}
