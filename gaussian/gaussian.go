// SPDX-License-Identifier: MIT
// Package gaussian: scalar/vector normal density, tail probability, softmax.

package gaussian

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Shared normal-distribution constants (single source of truth).
const (
	// log2Pi = log(2π), the multivariate normalizing-constant base.
	log2Pi = 1.8378770664093454835606594728112353

	// logInvSqrt2Pi = log(1/√(2π)), the univariate log-density constant.
	logInvSqrt2Pi = -0.91893853320467274178032973640561764

	// invSqrt2 = 1/√2, used to express the normal CDF through erfc.
	invSqrt2 = 1.0 / math.Sqrt2
)

// PointMassTol is the absolute-difference tolerance under which a point is
// considered to coincide with the mean of a degenerate (non-factorizable)
// covariance. See Dmvnorm for the point-mass fallback contract.
const PointMassTol = 1e-6

// Dnorm evaluates the univariate normal density elementwise:
// out[i] = N(x[i]; mean[i], variance[i]), in log form when logForm is true.
//
// Variance entries must be strictly positive; that precondition is the
// caller's responsibility (a zero or negative variance yields ±Inf/NaN by
// ordinary float arithmetic, exactly as the formula dictates).
//
// Errors:
//   - ErrEmptyInput         — x has zero length.
//   - ErrDimensionMismatch  — mean or variance length differs from x.
//
// Complexity: Time O(n), Space O(n) for the result.
func Dnorm(x, mean, variance []float64, logForm bool) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(mean) != len(x) || len(variance) != len(x) {
		return nil, ErrDimensionMismatch
	}

	out := make([]float64, len(x))
	var d float64 // centered value temporary
	for i := range x {
		d = x[i] - mean[i]
		out[i] = logInvSqrt2Pi - 0.5*math.Log(variance[i]) - d*d/(2.0*variance[i])
	}
	if !logForm {
		for i := range out {
			out[i] = math.Exp(out[i])
		}
	}

	return out, nil
}

// Pnorm returns the probability that a normal variable with mean x and
// standard deviation sd falls below the threshold mean:
//
//	P( N(x, sd²) < mean ) = ½·erfc( (x − mean) / (sd·√2) )
//
// lowerTail=false returns the complementary mass, logForm returns the
// logarithm of the selected tail. The erfc formulation stays accurate far
// into the tails where 1−Φ would cancel.
//
// sd must be nonzero; the zero-scale case is deliberately NOT handled here
// — posterior engines special-case exact-zero scales before calling
// (probability-of-negative forced to 0, probability-of-zero to 1).
func Pnorm(x, mean, sd float64, logForm, lowerTail bool) float64 {
	res := 0.5 * math.Erfc((x-mean)/sd*invSqrt2)

	switch {
	case !lowerTail && !logForm:
		return 1.0 - res
	case lowerTail && !logForm:
		return res
	case !lowerTail && logForm:
		return math.Log(1.0 - res)
	default: // lowerTail && logForm
		return math.Log(res)
	}
}

// PnormVec applies Pnorm elementwise over parallel slices.
//
// Errors:
//   - ErrEmptyInput         — x has zero length.
//   - ErrDimensionMismatch  — mean or sd length differs from x.
func PnormVec(x, mean, sd []float64, logForm, lowerTail bool) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(mean) != len(x) || len(sd) != len(x) {
		return nil, ErrDimensionMismatch
	}

	out := make([]float64, len(x))
	for i := range x {
		out[i] = Pnorm(x[i], mean[i], sd[i], logForm, lowerTail)
	}

	return out, nil
}

// Softmax returns y with y[i] = exp(x[i]) / Σ exp(x[j]).
//
// The maximum is subtracted before exponentiating, so inputs on the order
// of ±1000 do not overflow. The output always sums to 1 and is invariant
// to adding a constant to every input. Returns nil for empty input.
//
// Complexity: Time O(n), Space O(n).
func Softmax(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	y := make([]float64, len(x))
	shift := floats.Max(x)
	for i := range x {
		y[i] = math.Exp(x[i] - shift)
	}
	floats.Scale(1.0/floats.Sum(y), y)

	return y
}
