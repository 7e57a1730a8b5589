// Package posterior: univariate mixture posterior engine.

package posterior

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ASH is the univariate (single-condition) posterior engine. Each unit
// j has a scalar effect estimate b[j] with standard error s[j], the
// noise variance is s[j]²·v, and the prior components are scalar
// variances. The conjugate update collapses to arithmetic:
//
//	U₁ = U / (U/σ² + 1),  μ₁ = U₁ · b/σ²
//
// followed by the same rescale rule as the multivariate engines
// (μ₁·α, U₁·α²) and the shared mixture reduction.
type ASH struct {
	b, s, sAlpha []float64
	v            float64
	priors       []float64

	acc *accumulator
}

// NewASH validates and builds the engine. Empty s means unit standard
// errors; empty sAlpha means no rescaling (factor one). v must be
// strictly positive.
func NewASH(b, s, sAlpha []float64, v float64, priors []float64) (*ASH, error) {
	units := len(b)
	if units == 0 || len(priors) == 0 {
		return nil, fmt.Errorf("NewASH: %w", ErrEmptyInput)
	}
	if len(s) == 0 {
		s = onesSlice(units)
	}
	if len(sAlpha) == 0 {
		sAlpha = onesSlice(units)
	}
	if len(s) != units || len(sAlpha) != units {
		return nil, fmt.Errorf("NewASH: %w", ErrDimensionMismatch)
	}
	if v <= 0 {
		return nil, fmt.Errorf("NewASH: v: %w", ErrBadInput)
	}

	return &ASH{b: b, s: s, sAlpha: sAlpha, v: v, priors: priors}, nil
}

// Compute mixes the per-component conjugate posteriors with the P×J
// weights matrix. Vector summaries only; there is no covariance in one
// dimension beyond the variance already reported through SD.
func (a *ASH) Compute(weights *mat.Dense) error {
	units := len(a.b)
	comps := len(a.priors)
	if err := validateWeights(weights, comps, units); err != nil {
		return fmt.Errorf("Compute: %w", err)
	}

	acc := newAccumulator(1, units, false, false)

	var (
		j, p             int
		vinv, alpha      float64
		u0, u1, mu1, gen float64
	)
	for j = 0; j < units; j++ {
		vinv = 1.0 / (a.s[j] * a.s[j] * a.v)
		alpha = a.sAlpha[j]
		gen = vinv * a.b[j]
		for p = 0; p < comps; p++ {
			u0 = a.priors[p]
			u1 = u0 / (vinv*u0 + 1.0)
			mu1 = u1 * gen * alpha
			acc.addScalar(j, weights.At(p, j), mu1, u1*alpha*alpha)
		}
	}
	acc.finalize()
	a.acc = acc

	return nil
}

// Mean returns the posterior means, one per unit. Nil before Compute.
func (a *ASH) Mean() []float64 { return a.row0(func(acc *accumulator) *mat.Dense { return acc.mean }) }

// SD returns the posterior standard deviations, one per unit.
// Nil before Compute.
func (a *ASH) SD() []float64 {
	if a.acc == nil {
		return nil
	}
	sd := a.acc.sdT()
	out := make([]float64, len(a.b))
	for j := range out {
		out[j] = sd.At(j, 0)
	}

	return out
}

// NegativeProb returns the posterior probability of a negative effect,
// one per unit. Nil before Compute.
func (a *ASH) NegativeProb() []float64 {
	return a.row0(func(acc *accumulator) *mat.Dense { return acc.neg })
}

// ZeroProb returns the posterior probability of an exactly zero effect,
// one per unit. Nil before Compute.
func (a *ASH) ZeroProb() []float64 {
	return a.row0(func(acc *accumulator) *mat.Dense { return acc.zero })
}

// row0 copies row 0 of the selected internal matrix into a fresh slice.
func (a *ASH) row0(pick func(*accumulator) *mat.Dense) []float64 {
	if a.acc == nil {
		return nil
	}
	m := pick(a.acc)
	out := make([]float64, len(a.b))
	for j := range out {
		out[j] = m.At(0, j)
	}

	return out
}
