// Package posterior: report-type selector.

package posterior

// ReportType selects how much of the posterior is materialized by a
// Compute call. The vector summaries (mean, SD, negative/zero
// probability) are always produced; the report type only controls the
// per-unit covariance output.
type ReportType int

const (
	// ReportMean — vector summaries only, no covariance accumulation.
	ReportMean ReportType = iota + 1

	// ReportSecondMoment — additionally accumulate the per-unit weighted
	// second-moment matrices Σₚ wₚ·(U₁ₚ + μₚμₚᵀ), without centering.
	ReportSecondMoment

	// ReportDefault — the standard output set; same vector summaries as
	// ReportMean, no covariance.
	ReportDefault

	// ReportFullCov — additionally produce the centered posterior
	// covariance per unit (second moment minus the outer product of the
	// mixed posterior mean).
	ReportFullCov
)

// valid reports whether rt is one of the defined report types.
func (rt ReportType) valid() bool {
	return rt >= ReportMean && rt <= ReportFullCov
}

// wantCov reports whether this report type accumulates per-unit
// covariance matrices at all.
func (rt ReportType) wantCov() bool {
	return rt == ReportSecondMoment || rt == ReportFullCov
}

// centered reports whether the accumulated covariance is centered by
// subtracting the mixed-mean outer product at the end.
func (rt ReportType) centered() bool {
	return rt == ReportFullCov
}
