// Package posterior: sentinel error set, matched via errors.Is.

package posterior

import "errors"

var (
	// ErrEmptyInput indicates a required input (effects, priors, weights,
	// inclusion weights) was missing or zero-sized.
	ErrEmptyInput = errors.New("posterior: empty input")

	// ErrDimensionMismatch indicates incompatible shapes between effects,
	// standard errors, priors, caches, weights or the projection.
	ErrDimensionMismatch = errors.New("posterior: dimension mismatch")

	// ErrBadReportType indicates a ReportType outside the defined range.
	ErrBadReportType = errors.New("posterior: invalid report type")

	// ErrBadInput indicates a parameter value outside its valid range,
	// e.g. a non-positive noise variance.
	ErrBadInput = errors.New("posterior: invalid parameter")
)
