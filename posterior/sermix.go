// Package posterior: single-effect mixture posterior engine.

package posterior

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/covariance"
)

// SERMix is the single-effect regression mixture engine. It runs the
// same conjugate updates as MASH — one candidate prior component per
// weight row — but always materializes the full centered per-unit
// posterior covariance, and optionally produces the EM statistic used
// to refit the prior scale:
//
//	priorScalar[p] = trace(U⁻¹ₚ · Σⱼ γₚⱼ·(U₁ₚⱼ + μₚⱼμₚⱼᵀ)) / R
//
// where γ are the caller-supplied inclusion weights. The statistic is
// only computed when prior inverses were attached with SetPriorInv.
type SERMix struct {
	b      *mat.Dense        // R×J effect estimates
	se     covariance.StdErr // standard errors + rescale factor
	v      mat.Symmetric     // R×R base noise covariance
	priors []*mat.SymDense   // P candidate prior covariances

	priorInv []*mat.SymDense // optional P prior inverses for the EM statistic
	vinv     []*mat.SymDense // optional precision cache: 1 or J entries
	u0       []*mat.Dense    // optional posterior-cov cache: P or J·P entries

	acc         *accumulator
	priorScalar []float64
}

// NewSERMix validates shapes and builds the engine. Same contract as
// NewMASH minus the transform and projection.
func NewSERMix(b *mat.Dense, se covariance.StdErr, v mat.Symmetric, priors []*mat.SymDense) (*SERMix, error) {
	rows, units := b.Dims()
	if rows == 0 || units == 0 || len(priors) == 0 {
		return nil, fmt.Errorf("NewSERMix: %w", ErrEmptyInput)
	}
	if se.Raw() == nil {
		se, _ = covariance.NewStdErr(nil, nil, nil, rows, units)
	}
	if sr, sc := se.Raw().Dims(); sr != rows || sc != units {
		return nil, fmt.Errorf("NewSERMix: se: %w", ErrDimensionMismatch)
	}
	if v.SymmetricDim() != rows {
		return nil, fmt.Errorf("NewSERMix: v: %w", ErrDimensionMismatch)
	}
	for p := range priors {
		if priors[p].SymmetricDim() != rows {
			return nil, fmt.Errorf("NewSERMix: prior %d: %w", p, ErrDimensionMismatch)
		}
	}

	return &SERMix{b: b, se: se, v: v, priors: priors}, nil
}

// SetPriorInv attaches the inverses of the prior components, enabling
// the per-component prior-scale EM statistic. Must match the priors in
// count and order.
func (s *SERMix) SetPriorInv(priorInv []*mat.SymDense) error {
	rows, _ := s.b.Dims()
	if len(priorInv) != len(s.priors) {
		return fmt.Errorf("SetPriorInv: %w", ErrDimensionMismatch)
	}
	for i := range priorInv {
		if priorInv[i].SymmetricDim() != rows {
			return fmt.Errorf("SetPriorInv: entry %d: %w", i, ErrDimensionMismatch)
		}
	}
	s.priorInv = priorInv

	return nil
}

// SetNoisePrecision attaches precomputed noise precisions: J entries or
// a single shared one.
func (s *SERMix) SetNoisePrecision(vinv []*mat.SymDense) error {
	rows, units := s.b.Dims()
	if len(vinv) != 1 && len(vinv) != units {
		return fmt.Errorf("SetNoisePrecision: %w", ErrDimensionMismatch)
	}
	for i := range vinv {
		if vinv[i].SymmetricDim() != rows {
			return fmt.Errorf("SetNoisePrecision: entry %d: %w", i, ErrDimensionMismatch)
		}
	}
	s.vinv = vinv

	return nil
}

// SetPosteriorCovCache attaches precomputed conjugate posterior
// covariances: P entries shared across units, or J·P in unit-major order.
func (s *SERMix) SetPosteriorCovCache(u0 []*mat.Dense) error {
	rows, units := s.b.Dims()
	comps := len(s.priors)
	if len(u0) != comps && len(u0) != units*comps {
		return fmt.Errorf("SetPosteriorCovCache: %w", ErrDimensionMismatch)
	}
	for i := range u0 {
		if ur, uc := u0[i].Dims(); ur != rows || uc != rows {
			return fmt.Errorf("SetPosteriorCovCache: entry %d: %w", i, ErrDimensionMismatch)
		}
	}
	s.u0 = u0

	return nil
}

// Compute runs the general per-unit path. weights and inclusion are
// both P×J: weights mix the components into the reported posterior,
// inclusion (the single-effect responsibilities) weight the EM
// statistic. Pass the same matrix for both when they coincide.
func (s *SERMix) Compute(weights, inclusion *mat.Dense) error {
	rows, units := s.b.Dims()
	comps := len(s.priors)
	if err := validateWeights(weights, comps, units); err != nil {
		return fmt.Errorf("Compute: weights: %w", err)
	}
	if err := validateWeights(inclusion, comps, units); err != nil {
		return fmt.Errorf("Compute: inclusion: %w", err)
	}

	acc := newAccumulator(rows, units, true, true)
	m2 := s.newMomentAccum(rows, comps)

	alpha := s.se.Alpha()
	orig := s.se.Original()
	scale := make([]float64, rows)
	alphaCol := make([]float64, rows)

	var (
		j, p int
		mu   []float64
		u1   *mat.Dense
	)
	for j = 0; j < units; j++ {
		vinvJ, err := s.noisePrecision(j, orig, scale)
		if err != nil {
			return fmt.Errorf("Compute: unit %d: %w", j, err)
		}
		mat.Col(alphaCol, j, alpha)
		for p = 0; p < comps; p++ {
			u0, err := s.posteriorCov(j, p, vinvJ)
			if err != nil {
				return fmt.Errorf("Compute: unit %d component %d: %w", j, p, err)
			}
			mu = scaleVec(vecToSlice(covariance.PosteriorMean(s.b.ColView(j), vinvJ, u0)), alphaCol)
			u1 = scaleCov(u0, alphaCol)
			acc.add(j, weights.At(p, j), mu, u1)
			if m2 != nil {
				accumSecondMoment(m2[p], inclusion.At(p, j), mu, u1)
			}
		}
	}
	acc.finalize()
	s.acc = acc
	s.finishPriorScalar(m2, rows)

	return nil
}

// ComputeCommonCov runs the shared-noise fast path: unit 0's precision
// serves every unit, each component is factored once and broadcast.
func (s *SERMix) ComputeCommonCov(weights, inclusion *mat.Dense) error {
	rows, units := s.b.Dims()
	comps := len(s.priors)
	if err := validateWeights(weights, comps, units); err != nil {
		return fmt.Errorf("ComputeCommonCov: weights: %w", err)
	}
	if err := validateWeights(inclusion, comps, units); err != nil {
		return fmt.Errorf("ComputeCommonCov: inclusion: %w", err)
	}

	acc := newAccumulator(rows, units, true, true)
	m2 := s.newMomentAccum(rows, comps)

	alpha := s.se.Alpha()
	orig := s.se.Original()
	scale := make([]float64, rows)
	vinv, err := s.noisePrecision(0, orig, scale)
	if err != nil {
		return fmt.Errorf("ComputeCommonCov: %w", err)
	}

	alphaCol0 := mat.Col(nil, 0, alpha)
	muCol := make([]float64, rows)

	var (
		p, j   int
		scaled mat.Dense
	)
	for p = 0; p < comps; p++ {
		u0, err := s.posteriorCov(0, p, vinv)
		if err != nil {
			return fmt.Errorf("ComputeCommonCov: component %d: %w", p, err)
		}
		scaled.MulElem(covariance.PosteriorMeanBatch(s.b, vinv, u0), alpha)
		u1 := scaleCov(u0, alphaCol0)
		for j = 0; j < units; j++ {
			mat.Col(muCol, j, &scaled)
			acc.add(j, weights.At(p, j), muCol, u1)
			if m2 != nil {
				accumSecondMoment(m2[p], inclusion.At(p, j), muCol, u1)
			}
		}
	}
	acc.finalize()
	s.acc = acc
	s.finishPriorScalar(m2, rows)

	return nil
}

// newMomentAccum allocates one second-moment accumulator per component,
// or nil when no prior inverses were attached.
func (s *SERMix) newMomentAccum(rows, comps int) []*mat.Dense {
	if s.priorInv == nil {
		return nil
	}
	m2 := make([]*mat.Dense, comps)
	for p := range m2 {
		m2[p] = mat.NewDense(rows, rows, nil)
	}

	return m2
}

// finishPriorScalar turns the accumulated inclusion-weighted second
// moments into the per-component EM statistic.
func (s *SERMix) finishPriorScalar(m2 []*mat.Dense, rows int) {
	if m2 == nil {
		s.priorScalar = nil
		return
	}
	s.priorScalar = make([]float64, len(m2))
	for p := range m2 {
		s.priorScalar[p] = traceProduct(s.priorInv[p], m2[p]) / float64(rows)
	}
}

// accumSecondMoment folds w·(u1 + μμᵀ) into m2.
func accumSecondMoment(m2 *mat.Dense, w float64, mu []float64, u1 *mat.Dense) {
	n := len(mu)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m2.Set(r, c, m2.At(r, c)+w*(u1.At(r, c)+mu[r]*mu[c]))
		}
	}
}

func (s *SERMix) noisePrecision(j int, orig *mat.Dense, scale []float64) (mat.Matrix, error) {
	switch len(s.vinv) {
	case 0:
		// compute below
	case 1:
		return s.vinv[0], nil
	default:
		return s.vinv[j], nil
	}

	sigma, err := covariance.Observation(mat.Col(scale, j, orig), s.v, nil)
	if err != nil {
		return nil, err
	}

	return covariance.Precision(sigma)
}

func (s *SERMix) posteriorCov(j, p int, vinv mat.Matrix) (*mat.Dense, error) {
	comps := len(s.priors)
	switch len(s.u0) {
	case 0:
		return covariance.PosteriorCov(vinv, s.priors[p])
	case comps:
		return s.u0[p], nil
	default:
		return s.u0[j*comps+p], nil
	}
}

// Mean returns the posterior mean, units × conditions. Nil before Compute.
func (s *SERMix) Mean() *mat.Dense {
	if s.acc == nil {
		return nil
	}

	return s.acc.meanT()
}

// SD returns the posterior marginal standard deviations, units ×
// conditions. Nil before Compute.
func (s *SERMix) SD() *mat.Dense {
	if s.acc == nil {
		return nil
	}

	return s.acc.sdT()
}

// NegativeProb returns the posterior probability of being negative,
// units × conditions. Nil before Compute.
func (s *SERMix) NegativeProb() *mat.Dense {
	if s.acc == nil {
		return nil
	}

	return s.acc.negT()
}

// ZeroProb returns the posterior probability of being exactly zero,
// units × conditions. Nil before Compute.
func (s *SERMix) ZeroProb() *mat.Dense {
	if s.acc == nil {
		return nil
	}

	return s.acc.zeroT()
}

// Cov returns the centered per-unit posterior covariances. Unlike MASH
// these are always produced. Nil before Compute.
func (s *SERMix) Cov() []*mat.Dense {
	if s.acc == nil {
		return nil
	}

	return s.acc.covSlices()
}

// PriorScalar returns the per-component EM statistic for refitting the
// prior scale. Nil before Compute or when SetPriorInv was never called.
func (s *SERMix) PriorScalar() []float64 { return s.priorScalar }
