// Package likelihood: single-condition specialization.

package likelihood

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/gaussian"
)

// Univariate computes the J×P likelihood matrix for the single-condition
// case: lik[j,p] = N(b[j]; 0, s[j]²·v + priors[p]). The whole column for
// a component is evaluated in one vectorized density call — no per-unit
// matrix work exists on this path.
//
// Inputs:
//   - b      — J observed effects.
//   - s      — J standard errors; nil means all-ones.
//   - v      — scalar noise variance factor shared by all units.
//   - priors — P candidate prior variances.
//
// Errors:
//   - ErrEmptyInput         — empty b or priors.
//   - ErrDimensionMismatch  — len(s) differs from len(b).
func Univariate(b, s []float64, v float64, priors []float64, logForm bool) (*mat.Dense, error) {
	units := len(b)
	if units == 0 || len(priors) == 0 {
		return nil, fmt.Errorf("Univariate: %w", ErrEmptyInput)
	}
	if s == nil {
		s = make([]float64, units)
		for j := range s {
			s[j] = 1.0
		}
	}
	if len(s) != units {
		return nil, fmt.Errorf("Univariate: %w", ErrDimensionMismatch)
	}

	// Per-unit noise variances, shared across components.
	noise := make([]float64, units)
	for j := range noise {
		noise[j] = s[j] * s[j] * v
	}

	mean := make([]float64, units) // zeros
	variance := make([]float64, units)
	lik := mat.NewDense(units, len(priors), nil)
	for p := range priors {
		for j := range variance {
			variance[j] = noise[j] + priors[p]
		}
		col, err := gaussian.Dnorm(b, mean, variance, logForm)
		if err != nil {
			return nil, fmt.Errorf("Univariate: %w", err)
		}
		lik.SetCol(p, col)
	}

	return lik, nil
}
