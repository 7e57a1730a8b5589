package gaussian_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlbayes/gaussian"
)

// TestDnorm_EmptyInput verifies that Dnorm rejects a zero-length x.
func TestDnorm_EmptyInput(t *testing.T) {
	_, err := gaussian.Dnorm(nil, nil, nil, false)
	assert.ErrorIs(t, err, gaussian.ErrEmptyInput, "empty x must error ErrEmptyInput")
}

// TestDnorm_DimensionMismatch verifies the parallel-slice length check.
func TestDnorm_DimensionMismatch(t *testing.T) {
	_, err := gaussian.Dnorm([]float64{1, 2}, []float64{0}, []float64{1, 1}, false)
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch, "short mean must error")

	_, err = gaussian.Dnorm([]float64{1, 2}, []float64{0, 0}, []float64{1}, false)
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch, "short variance must error")
}

// TestDnorm_StandardValues checks the density at known points of N(0,1).
func TestDnorm_StandardValues(t *testing.T) {
	out, err := gaussian.Dnorm(
		[]float64{0, 1, -1},
		[]float64{0, 0, 0},
		[]float64{1, 1, 1},
		false,
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.3989422804014327, out[0], 1e-15, "N(0;0,1)")
	assert.InDelta(t, 0.24197072451914337, out[1], 1e-15, "N(1;0,1)")
	assert.InDelta(t, out[1], out[2], 1e-15, "density is symmetric about the mean")
}

// TestDnorm_LogMatchesLinear confirms the log form is the log of the
// linear form, including non-unit means and variances.
func TestDnorm_LogMatchesLinear(t *testing.T) {
	x := []float64{-2, 0.5, 3}
	mean := []float64{1, 1, 1}
	variance := []float64{0.25, 2, 9}

	lin, err := gaussian.Dnorm(x, mean, variance, false)
	require.NoError(t, err)
	logf, err := gaussian.Dnorm(x, mean, variance, true)
	require.NoError(t, err)

	for i := range lin {
		assert.InDelta(t, math.Log(lin[i]), logf[i], 1e-12, "log form at index %d", i)
	}
}

// TestPnorm_Median verifies the 50/50 split when the point equals the
// threshold.
func TestPnorm_Median(t *testing.T) {
	assert.InDelta(t, 0.5, gaussian.Pnorm(0, 0, 1, false, true), 1e-15)
	assert.InDelta(t, 0.5, gaussian.Pnorm(3, 3, 2.5, false, false), 1e-15)
}

// TestPnorm_Complement checks lower + upper tails sum to one.
func TestPnorm_Complement(t *testing.T) {
	for _, x := range []float64{-4, -1, 0, 0.5, 2, 7} {
		lo := gaussian.Pnorm(x, 1, 2, false, true)
		hi := gaussian.Pnorm(x, 1, 2, false, false)
		assert.InDelta(t, 1.0, lo+hi, 1e-12, "tails at x=%v", x)
	}
}

// TestPnorm_LogForm confirms the log form is the log of the linear tail.
func TestPnorm_LogForm(t *testing.T) {
	lin := gaussian.Pnorm(1.5, 0, 1, false, true)
	assert.InDelta(t, math.Log(lin), gaussian.Pnorm(1.5, 0, 1, true, true), 1e-12)

	lin = gaussian.Pnorm(1.5, 0, 1, false, false)
	assert.InDelta(t, math.Log(lin), gaussian.Pnorm(1.5, 0, 1, true, false), 1e-12)
}

// TestPnorm_KnownTail pins a textbook value: the mass of N(1.96, 1)
// below zero is about 2.5%.
func TestPnorm_KnownTail(t *testing.T) {
	assert.InDelta(t, 0.024997895, gaussian.Pnorm(1.96, 0, 1, false, true), 1e-8)
}

// TestPnorm_FarTailStaysPositive checks the erfc formulation keeps
// resolution deep in the tail where 1−Φ would round to zero.
func TestPnorm_FarTailStaysPositive(t *testing.T) {
	p := gaussian.Pnorm(15, 0, 1, false, true)
	assert.Greater(t, p, 0.0, "15σ tail must stay positive")
	assert.Less(t, p, 1e-40, "15σ tail must be tiny")
}

// TestPnormVec_MatchesScalar verifies elementwise agreement with Pnorm
// and the input validation.
func TestPnormVec_MatchesScalar(t *testing.T) {
	x := []float64{-1, 0, 2}
	mean := []float64{0, 0, 1}
	sd := []float64{1, 2, 0.5}

	out, err := gaussian.PnormVec(x, mean, sd, false, true)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, gaussian.Pnorm(x[i], mean[i], sd[i], false, true), out[i], 1e-15)
	}

	_, err = gaussian.PnormVec(nil, nil, nil, false, true)
	assert.ErrorIs(t, err, gaussian.ErrEmptyInput)

	_, err = gaussian.PnormVec(x, mean[:2], sd, false, true)
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch)
}

// TestSoftmax_SumsToOne checks normalization and the known 1,2,3 weights.
func TestSoftmax_SumsToOne(t *testing.T) {
	y := gaussian.Softmax([]float64{1, 2, 3})
	require.Len(t, y, 3)

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12, "weights must sum to one")
	assert.InDelta(t, 0.09003057317038046, y[0], 1e-12)
	assert.InDelta(t, 0.24472847105479767, y[1], 1e-12)
	assert.InDelta(t, 0.6652409557748219, y[2], 1e-12)
}

// TestSoftmax_ShiftInvariance verifies adding a constant to every input
// leaves the output unchanged.
func TestSoftmax_ShiftInvariance(t *testing.T) {
	a := gaussian.Softmax([]float64{-1, 0, 4})
	b := gaussian.Softmax([]float64{999, 1000, 1004})
	for i := range a {
		assert.InDelta(t, a[i], b[i], 1e-12, "shifted input at index %d", i)
	}
}

// TestSoftmax_LargeInputsNoOverflow checks the max-subtraction guard.
func TestSoftmax_LargeInputsNoOverflow(t *testing.T) {
	y := gaussian.Softmax([]float64{1000, 1000})
	require.Len(t, y, 2)
	assert.InDelta(t, 0.5, y[0], 1e-12)
	assert.InDelta(t, 0.5, y[1], 1e-12)
	assert.False(t, math.IsNaN(y[0]), "no NaN from exp overflow")
}

// TestSoftmax_Empty returns nil for empty input.
func TestSoftmax_Empty(t *testing.T) {
	assert.Nil(t, gaussian.Softmax(nil))
}
