// Package posterior: shared weighted-mixture accumulator.
//
// All three engines (MASH, ASH, SERMix) reduce per-component posterior
// quantities into the same five summaries. The reduction lives here, in
// exactly one place, so the invariants hold for every engine and both
// covariance paths:
//
//   - Var = E[X²] − (E[X])² elementwise (finalize);
//   - zero posterior SD in a cell forces neg=0, zero=1 (cellStats);
//   - covariance accumulates Σ w·(U₁ + μμᵀ), optionally centered by the
//     mixed-mean outer product (finalize).

package posterior

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/gaussian"
)

// accumulator collects weighted per-component contributions for J units
// with `rows` output coordinates each. Internal storage is rows × units,
// matching the engines' column-per-unit orientation; the *T accessors
// transpose into the external units × rows contract.
type accumulator struct {
	rows, units int
	withCov     bool // accumulate per-unit covariance matrices
	center      bool // subtract mean outer product in finalize

	mean *mat.Dense // running Σₚ wₚ·μₚ
	vr   *mat.Dense // running Σₚ wₚ·(μₚ² + diag U₁ₚ); centered in finalize
	neg  *mat.Dense // running Σₚ wₚ·P(<0)
	zero *mat.Dense // running Σₚ wₚ·1{sd=0}
	cov  []*mat.Dense
}

func newAccumulator(rows, units int, withCov, center bool) *accumulator {
	a := &accumulator{
		rows:    rows,
		units:   units,
		withCov: withCov,
		center:  center,
		mean:    mat.NewDense(rows, units, nil),
		vr:      mat.NewDense(rows, units, nil),
		neg:     mat.NewDense(rows, units, nil),
		zero:    mat.NewDense(rows, units, nil),
	}
	if withCov {
		a.cov = make([]*mat.Dense, units)
		for j := range a.cov {
			a.cov[j] = mat.NewDense(rows, rows, nil)
		}
	}

	return a
}

// cellStats evaluates one (dimension, component) cell: the second moment
// μ² + σ², the probability of being negative and the zero-probability
// indicator. The zero-scale rule lives here and nowhere else: an exactly
// zero posterior SD means the component is a point mass at zero in that
// dimension, so neg is forced to 0 and zero to 1 — the tail formula is
// undefined at zero scale and must not be consulted.
func cellStats(mu, variance float64) (mu2, negp, zerop float64) {
	mu2 = mu*mu + variance
	sd := math.Sqrt(variance)
	if sd == 0 {
		return mu2, 0.0, 1.0
	}

	return mu2, gaussian.Pnorm(mu, 0, sd, false, true), 0.0
}

// add folds one component's posterior (mean vector mu, covariance u1)
// for unit j into the running summaries with mixture weight w.
func (a *accumulator) add(j int, w float64, mu []float64, u1 *mat.Dense) {
	var mu2, negp, zerop float64
	for r := 0; r < a.rows; r++ {
		mu2, negp, zerop = cellStats(mu[r], u1.At(r, r))
		a.mean.Set(r, j, a.mean.At(r, j)+w*mu[r])
		a.vr.Set(r, j, a.vr.At(r, j)+w*mu2)
		a.neg.Set(r, j, a.neg.At(r, j)+w*negp)
		a.zero.Set(r, j, a.zero.At(r, j)+w*zerop)
	}
	if a.withCov {
		cj := a.cov[j]
		for r := 0; r < a.rows; r++ {
			for c := 0; c < a.rows; c++ {
				cj.Set(r, c, cj.At(r, c)+w*(u1.At(r, c)+mu[r]*mu[c]))
			}
		}
	}
}

// addScalar is the one-dimensional form used by the univariate engine:
// unit j is a single cell with posterior mean mu and variance v1.
func (a *accumulator) addScalar(j int, w, mu, v1 float64) {
	mu2, negp, zerop := cellStats(mu, v1)
	a.mean.Set(0, j, a.mean.At(0, j)+w*mu)
	a.vr.Set(0, j, a.vr.At(0, j)+w*mu2)
	a.neg.Set(0, j, a.neg.At(0, j)+w*negp)
	a.zero.Set(0, j, a.zero.At(0, j)+w*zerop)
}

// finalize converts accumulated second moments into variances
// (Var = E[X²] − (E[X])²) and, when centering was requested, subtracts
// the mixed-mean outer product from every unit's covariance. Call exactly
// once, after the last add.
func (a *accumulator) finalize() {
	var m float64
	for j := 0; j < a.units; j++ {
		for r := 0; r < a.rows; r++ {
			m = a.mean.At(r, j)
			a.vr.Set(r, j, a.vr.At(r, j)-m*m)
		}
	}
	if a.withCov && a.center {
		for j := 0; j < a.units; j++ {
			cj := a.cov[j]
			for r := 0; r < a.rows; r++ {
				for c := 0; c < a.rows; c++ {
					cj.Set(r, c, cj.At(r, c)-a.mean.At(r, j)*a.mean.At(c, j))
				}
			}
		}
	}
}

// meanT returns the posterior mean transposed to units × rows.
func (a *accumulator) meanT() *mat.Dense { return transposed(a.mean) }

// sdT returns elementwise sqrt of the posterior variance, units × rows.
func (a *accumulator) sdT() *mat.Dense {
	out := mat.NewDense(a.units, a.rows, nil)
	for j := 0; j < a.units; j++ {
		for r := 0; r < a.rows; r++ {
			out.Set(j, r, math.Sqrt(a.vr.At(r, j)))
		}
	}

	return out
}

// negT returns the probability-of-negative matrix, units × rows.
func (a *accumulator) negT() *mat.Dense { return transposed(a.neg) }

// zeroT returns the probability-of-zero matrix, units × rows.
func (a *accumulator) zeroT() *mat.Dense { return transposed(a.zero) }

// covSlices returns the per-unit covariance matrices (nil when the
// report type did not request them). The slice is shared, read-only.
func (a *accumulator) covSlices() []*mat.Dense { return a.cov }

// transposed returns a fresh transpose copy of m.
func transposed(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}

	return out
}
