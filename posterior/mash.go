// Package posterior: multivariate mixture posterior engine.

package posterior

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/covariance"
)

// MASH is the full multivariate posterior engine. For each unit j it
// obtains the unit's noise precision, runs the conjugate update against
// every prior component, applies the rescale factor and the optional
// projection (in that order), and folds the components together with the
// caller-supplied posterior weights.
//
// Construct with NewMASH, optionally attach precomputed caches, then call
// Compute or ComputeCommonCov exactly once per weights matrix. Accessors
// return nil before the first successful Compute.
type MASH struct {
	b          *mat.Dense        // R×J effect estimates
	se         covariance.StdErr // standard errors + rescale factor
	v          mat.Symmetric     // R×R base noise correlation/covariance
	transform  mat.Matrix        // optional L in L·(SVS)·Lᵀ, nil for none
	projection mat.Matrix        // optional Q×R output projection, nil for none
	priors     []*mat.SymDense   // P candidate prior covariances, R×R each

	vinv []*mat.SymDense // optional precision cache: 1 or J entries
	u0   []*mat.Dense    // optional posterior-cov cache: P or J·P entries

	acc *accumulator
}

// NewMASH validates shapes and builds the engine.
//
// b is conditions × units; se must be shaped like b (a zero-value StdErr
// is replaced by the all-ones adapter); v must have order R; transform,
// when present, must be R×R; projection, when present, must have R
// columns (its row count Q becomes the output dimension); every prior
// must have order R.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch.
func NewMASH(b *mat.Dense, se covariance.StdErr, v mat.Symmetric, transform, projection mat.Matrix, priors []*mat.SymDense) (*MASH, error) {
	rows, units := b.Dims()
	if rows == 0 || units == 0 || len(priors) == 0 {
		return nil, fmt.Errorf("NewMASH: %w", ErrEmptyInput)
	}
	if se.Raw() == nil {
		se, _ = covariance.NewStdErr(nil, nil, nil, rows, units)
	}
	if sr, sc := se.Raw().Dims(); sr != rows || sc != units {
		return nil, fmt.Errorf("NewMASH: se: %w", ErrDimensionMismatch)
	}
	if v.SymmetricDim() != rows {
		return nil, fmt.Errorf("NewMASH: v: %w", ErrDimensionMismatch)
	}
	if transform != nil {
		if tr, tc := transform.Dims(); tr != rows || tc != rows {
			return nil, fmt.Errorf("NewMASH: transform: %w", ErrDimensionMismatch)
		}
	}
	if projection != nil {
		if _, pc := projection.Dims(); pc != rows {
			return nil, fmt.Errorf("NewMASH: projection: %w", ErrDimensionMismatch)
		}
	}
	for p := range priors {
		if priors[p].SymmetricDim() != rows {
			return nil, fmt.Errorf("NewMASH: prior %d: %w", p, ErrDimensionMismatch)
		}
	}

	return &MASH{b: b, se: se, v: v, transform: transform, projection: projection, priors: priors}, nil
}

// SetNoisePrecision attaches precomputed per-unit noise precisions
// (inverse observation covariances): either J entries, one per unit, or
// a single shared entry. The engine reads the cache, never mutates it.
func (m *MASH) SetNoisePrecision(vinv []*mat.SymDense) error {
	rows, units := m.b.Dims()
	if len(vinv) != 1 && len(vinv) != units {
		return fmt.Errorf("SetNoisePrecision: %w", ErrDimensionMismatch)
	}
	for i := range vinv {
		if vinv[i].SymmetricDim() != rows {
			return fmt.Errorf("SetNoisePrecision: entry %d: %w", i, ErrDimensionMismatch)
		}
	}
	m.vinv = vinv

	return nil
}

// SetPosteriorCovCache attaches precomputed conjugate posterior
// covariances U₁: either P entries (shared across units, as in the
// common-covariance path) or J·P entries in unit-major order.
func (m *MASH) SetPosteriorCovCache(u0 []*mat.Dense) error {
	rows, units := m.b.Dims()
	comps := len(m.priors)
	if len(u0) != comps && len(u0) != units*comps {
		return fmt.Errorf("SetPosteriorCovCache: %w", ErrDimensionMismatch)
	}
	for i := range u0 {
		if ur, uc := u0[i].Dims(); ur != rows || uc != rows {
			return fmt.Errorf("SetPosteriorCovCache: entry %d: %w", i, ErrDimensionMismatch)
		}
	}
	m.u0 = u0

	return nil
}

// Compute runs the general per-unit path: every unit gets its own noise
// precision (from the cache or by SPD inversion of its observation
// covariance) and its own conjugate update per component.
//
// weights is P×J, one probability column per unit. rt controls the
// covariance output (see ReportType); vector summaries are always
// produced.
//
// Errors: ErrBadReportType, ErrDimensionMismatch, and propagated
// inversion failures (non-positive-definite observation covariance,
// singular conjugate system).
func (m *MASH) Compute(weights *mat.Dense, rt ReportType) error {
	if !rt.valid() {
		return fmt.Errorf("Compute: %w", ErrBadReportType)
	}
	rows, units := m.b.Dims()
	if err := validateWeights(weights, len(m.priors), units); err != nil {
		return fmt.Errorf("Compute: %w", err)
	}

	outRows := rows
	if m.projection != nil {
		outRows, _ = m.projection.Dims()
	}
	acc := newAccumulator(outRows, units, rt.wantCov(), rt.centered())

	alpha := m.se.Alpha()
	orig := m.se.Original()
	scale := make([]float64, rows)    // per-unit SE column scratch
	alphaCol := make([]float64, rows) // per-unit rescale column scratch

	var (
		j, p int
		mu   []float64
		u1   *mat.Dense
	)
	for j = 0; j < units; j++ {
		vinvJ, err := m.noisePrecision(j, orig, scale)
		if err != nil {
			return fmt.Errorf("Compute: unit %d: %w", j, err)
		}
		mat.Col(alphaCol, j, alpha)
		for p = 0; p < len(m.priors); p++ {
			u0, err := m.posteriorCov(j, p, vinvJ)
			if err != nil {
				return fmt.Errorf("Compute: unit %d component %d: %w", j, p, err)
			}
			// Rescale before any projection: μ ∘ α, then A·(μ ∘ α).
			mu = scaleVec(vecToSlice(covariance.PosteriorMean(m.b.ColView(j), vinvJ, u0)), alphaCol)
			u1 = scaleCov(u0, alphaCol)
			if m.projection != nil {
				mu = projectVec(m.projection, mu)
				u1 = projectCov(m.projection, u1)
			}
			acc.add(j, weights.At(p, j), mu, u1)
		}
	}
	acc.finalize()
	m.acc = acc

	return nil
}

// ComputeCommonCov runs the common-covariance fast path: one noise
// precision (from unit 0) serves every unit, so each component's
// posterior covariance and conjugate gain are computed once and
// broadcast across all J units with two matrix multiplies.
//
// Functionally identical to Compute when all units share the same noise
// covariance; asymptotically cheaper (O(P) factorizations instead of
// O(J·P)).
func (m *MASH) ComputeCommonCov(weights *mat.Dense, rt ReportType) error {
	if !rt.valid() {
		return fmt.Errorf("ComputeCommonCov: %w", ErrBadReportType)
	}
	rows, units := m.b.Dims()
	if err := validateWeights(weights, len(m.priors), units); err != nil {
		return fmt.Errorf("ComputeCommonCov: %w", err)
	}

	outRows := rows
	if m.projection != nil {
		outRows, _ = m.projection.Dims()
	}
	acc := newAccumulator(outRows, units, rt.wantCov(), rt.centered())

	alpha := m.se.Alpha()
	orig := m.se.Original()
	scale := make([]float64, rows)
	vinv, err := m.noisePrecision(0, orig, scale)
	if err != nil {
		return fmt.Errorf("ComputeCommonCov: %w", err)
	}

	alphaCol0 := mat.Col(nil, 0, alpha)
	muCol := make([]float64, outRows)

	var (
		p, j   int
		scaled mat.Dense // rescaled posterior means, R×J
		proj   mat.Dense // projected means, Q×J
	)
	for p = 0; p < len(m.priors); p++ {
		u0, err := m.posteriorCov(0, p, vinv)
		if err != nil {
			return fmt.Errorf("ComputeCommonCov: component %d: %w", p, err)
		}
		// All units at once: μ₁ = U₁·V⁻¹·B, then elementwise rescale.
		scaled.MulElem(covariance.PosteriorMeanBatch(m.b, vinv, u0), alpha)
		u1 := scaleCov(u0, alphaCol0)
		work := &scaled
		if m.projection != nil {
			proj.Mul(m.projection, &scaled)
			work = &proj
			u1 = projectCov(m.projection, u1)
		}
		for j = 0; j < units; j++ {
			mat.Col(muCol, j, work)
			acc.add(j, weights.At(p, j), muCol, u1)
		}
	}
	acc.finalize()
	m.acc = acc

	return nil
}

// noisePrecision resolves unit j's noise precision: cache when attached
// (a single shared entry serves every unit), otherwise SPD inversion of
// the observation covariance built from the original standard errors.
func (m *MASH) noisePrecision(j int, orig *mat.Dense, scale []float64) (mat.Matrix, error) {
	switch len(m.vinv) {
	case 0:
		// compute below
	case 1:
		return m.vinv[0], nil
	default:
		return m.vinv[j], nil
	}

	sigma, err := covariance.Observation(mat.Col(scale, j, orig), m.v, m.transform)
	if err != nil {
		return nil, err
	}

	return covariance.Precision(sigma)
}

// posteriorCov resolves the conjugate posterior covariance for (unit j,
// component p): unit-major cache, shared per-component cache, or the
// closed-form update.
func (m *MASH) posteriorCov(j, p int, vinv mat.Matrix) (*mat.Dense, error) {
	comps := len(m.priors)
	switch len(m.u0) {
	case 0:
		return covariance.PosteriorCov(vinv, m.priors[p])
	case comps:
		return m.u0[p], nil
	default:
		return m.u0[j*comps+p], nil
	}
}

// Mean returns the posterior mean, units × output coordinates.
// Nil before Compute.
func (m *MASH) Mean() *mat.Dense {
	if m.acc == nil {
		return nil
	}

	return m.acc.meanT()
}

// SD returns the posterior marginal standard deviations, units × output
// coordinates. Nil before Compute.
func (m *MASH) SD() *mat.Dense {
	if m.acc == nil {
		return nil
	}

	return m.acc.sdT()
}

// NegativeProb returns the posterior probability of being negative,
// units × output coordinates. Nil before Compute.
func (m *MASH) NegativeProb() *mat.Dense {
	if m.acc == nil {
		return nil
	}

	return m.acc.negT()
}

// ZeroProb returns the posterior probability of being exactly zero,
// units × output coordinates. Nil before Compute.
func (m *MASH) ZeroProb() *mat.Dense {
	if m.acc == nil {
		return nil
	}

	return m.acc.zeroT()
}

// Cov returns the per-unit posterior covariance matrices. Nil before
// Compute and nil when the report type did not request covariance.
func (m *MASH) Cov() []*mat.Dense {
	if m.acc == nil {
		return nil
	}

	return m.acc.covSlices()
}

// validateWeights checks a comps × units weight matrix.
func validateWeights(w *mat.Dense, comps, units int) error {
	if w == nil {
		return ErrEmptyInput
	}
	if wr, wc := w.Dims(); wr != comps || wc != units {
		return ErrDimensionMismatch
	}

	return nil
}
