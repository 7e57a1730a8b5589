// Package likelihood: multivariate likelihood-matrix evaluation.

package likelihood

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/covariance"
	"github.com/katalvlaran/lvlbayes/gaussian"
)

// Matrix computes the J×P matrix of (log-)likelihoods
// lik[j,p] = N(b̂ⱼ; 0, Vⱼ + Uₚ) for the columns of b (conditions × units).
//
// Inputs:
//   - b         — R×J effect estimates (R = conditions after any
//     transform, J = units).
//   - s         — standard errors, one column per unit, with as many rows
//     as the base covariance v; nil or empty means all-ones.
//   - v         — shared base correlation/covariance of the noise.
//   - transform — optional L applied as L·(SVS)·Lᵀ when building each
//     unit's noise covariance; nil for none. With a Q×R transform the
//     effect rows and prior orders must be Q.
//   - priors    — ordered candidate prior covariances U₀..U_{P−1}, each
//     matching the effect row count.
//   - opts      — Log / CommonCov selection; see Options.
//
// With opts.CommonCov the noise covariance is built once from column 0 of
// s and each combined covariance V+Uₚ is factored once for all units.
// Otherwise every (unit, component) pair gets its own factorization.
//
// Errors:
//   - ErrEmptyInput         — empty b or priors.
//   - ErrDimensionMismatch  — prior order differs from the effect rows,
//     or s disagrees with v/b (directly or via covariance.Observation).
//
// Degenerate combined covariances do not error; they produce the
// point-mass densities documented in package gaussian.
func Matrix(b, s *mat.Dense, v mat.Symmetric, transform mat.Matrix, priors []*mat.SymDense, opts Options) (*mat.Dense, error) {
	rows, units := b.Dims()
	if rows == 0 || units == 0 || len(priors) == 0 {
		return nil, fmt.Errorf("Matrix: %w", ErrEmptyInput)
	}
	for p := range priors {
		if priors[p].SymmetricDim() != rows {
			return nil, fmt.Errorf("Matrix: prior %d: %w", p, ErrDimensionMismatch)
		}
	}

	scaleRows := v.SymmetricDim()
	if s == nil {
		s = onesDense(scaleRows, units)
	}
	if sr, sc := s.Dims(); sr != scaleRows || sc != units {
		return nil, fmt.Errorf("Matrix: s: %w", ErrDimensionMismatch)
	}

	lik := mat.NewDense(units, len(priors), nil)
	mean := mat.NewVecDense(rows, nil)

	if opts.CommonCov {
		// One noise covariance for every unit: factor V+Uₚ once per
		// component, evaluate all J columns of b against it.
		sigma, err := covariance.Observation(mat.Col(nil, 0, s), v, transform)
		if err != nil {
			return nil, fmt.Errorf("Matrix: %w", err)
		}
		if sigma.SymmetricDim() != rows {
			return nil, fmt.Errorf("Matrix: %w", ErrDimensionMismatch)
		}
		combined := mat.NewSymDense(rows, nil)
		for p := range priors {
			combined.AddSym(sigma, priors[p])
			lik.SetCol(p, gaussian.DmvnormBatch(b, mean, combined, opts.Log))
		}

		return lik, nil
	}

	// General path: per-unit noise covariance, per-pair factorization.
	combined := mat.NewSymDense(rows, nil)
	scale := make([]float64, scaleRows)
	for j := 0; j < units; j++ {
		sigma, err := covariance.Observation(mat.Col(scale, j, s), v, transform)
		if err != nil {
			return nil, fmt.Errorf("Matrix: unit %d: %w", j, err)
		}
		if sigma.SymmetricDim() != rows {
			return nil, fmt.Errorf("Matrix: %w", ErrDimensionMismatch)
		}
		for p := range priors {
			combined.AddSym(sigma, priors[p])
			lik.Set(j, p, gaussian.Dmvnorm(b.ColView(j), mean, combined, opts.Log))
		}
	}

	return lik, nil
}

// MatrixFromRoots computes the J×P likelihood matrix from precomputed
// inverse-Cholesky roots of the combined covariances, skipping all
// factorization work.
//
// Root layout:
//   - opts.CommonCov — P roots, one per component, shared by all units.
//   - otherwise      — J·P roots in unit-major order: the root for
//     (unit j, component p) sits at index j·P + p.
//
// Errors:
//   - ErrEmptyInput         — empty b or roots.
//   - ErrDimensionMismatch  — root order differs from the effect rows, or
//     len(roots) is not a multiple of J in the per-unit layout.
func MatrixFromRoots(b *mat.Dense, roots []*gaussian.InvCholRoot, opts Options) (*mat.Dense, error) {
	rows, units := b.Dims()
	if rows == 0 || units == 0 || len(roots) == 0 {
		return nil, fmt.Errorf("MatrixFromRoots: %w", ErrEmptyInput)
	}
	for k := range roots {
		if roots[k].Dim() != rows {
			return nil, fmt.Errorf("MatrixFromRoots: root %d: %w", k, ErrDimensionMismatch)
		}
	}

	mean := mat.NewVecDense(rows, nil)

	if opts.CommonCov {
		lik := mat.NewDense(units, len(roots), nil)
		for p := range roots {
			lik.SetCol(p, gaussian.DmvnormBatchRoot(b, mean, roots[p], opts.Log))
		}

		return lik, nil
	}

	if len(roots)%units != 0 {
		return nil, fmt.Errorf("MatrixFromRoots: %w", ErrDimensionMismatch)
	}
	comps := len(roots) / units
	lik := mat.NewDense(units, comps, nil)
	k := 0 // unit-major cursor over roots
	for j := 0; j < units; j++ {
		for p := 0; p < comps; p++ {
			lik.Set(j, p, gaussian.DmvnormRoot(b.ColView(j), mean, roots[k], opts.Log))
			k++
		}
	}

	return lik, nil
}

// onesDense allocates an r×c matrix filled with ones.
func onesDense(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 1.0
	}

	return mat.NewDense(r, c, data)
}
