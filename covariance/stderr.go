// SPDX-License-Identifier: MIT
// Package covariance: immutable standard-error adapter.

package covariance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StdErr holds the per-unit-per-condition standard errors feeding the
// posterior engines, together with the rescale factor applied to
// posterior quantities and the optional pre-transform ("original")
// standard errors.
//
// StdErr is a value object: constructed once per call, read-only
// afterwards. The resolution rules are fixed at construction time —
// there is no hidden empty/non-empty state to consult later:
//
//   - nil or empty s        ⇒ all-ones standard errors AND all-ones
//     rescale factor (unit variance, no rescaling), regardless of sAlpha;
//   - nil or empty sAlpha   ⇒ all-ones rescale factor;
//   - nil or empty sOrig    ⇒ Original() resolves to the (possibly
//     defaulted) standard errors, so it always returns a valid,
//     non-empty matrix.
//
// All matrices are conditions × units (R×J). Returned matrices are shared
// with the adapter and must be treated as read-only.
type StdErr struct {
	s     *mat.Dense // R×J standard errors, never nil after construction
	alpha *mat.Dense // R×J rescale factor, never nil after construction
	orig  *mat.Dense // R×J pre-transform standard errors, nil when unset
}

// NewStdErr builds the adapter for an R×J problem. Any of s, sAlpha,
// sOrig may be nil or empty, with the defaults documented on StdErr.
//
// Errors:
//   - ErrEmptyInput         — rows or cols is not positive.
//   - ErrDimensionMismatch  — a supplied matrix is not rows × cols.
func NewStdErr(s, sAlpha, sOrig *mat.Dense, rows, cols int) (StdErr, error) {
	if rows <= 0 || cols <= 0 {
		return StdErr{}, fmt.Errorf("NewStdErr: %w", ErrEmptyInput)
	}

	out := StdErr{}
	switch {
	case isEmpty(s):
		// No standard errors supplied: unit variance, no rescaling.
		out.s = onesDense(rows, cols)
		out.alpha = onesDense(rows, cols)
	default:
		if r, c := s.Dims(); r != rows || c != cols {
			return StdErr{}, fmt.Errorf("NewStdErr: s: %w", ErrDimensionMismatch)
		}
		out.s = s
		if isEmpty(sAlpha) {
			out.alpha = onesDense(rows, cols)
		} else {
			if r, c := sAlpha.Dims(); r != rows || c != cols {
				return StdErr{}, fmt.Errorf("NewStdErr: sAlpha: %w", ErrDimensionMismatch)
			}
			out.alpha = sAlpha
		}
	}

	if !isEmpty(sOrig) {
		if r, c := sOrig.Dims(); r != rows || c != cols {
			return StdErr{}, fmt.Errorf("NewStdErr: sOrig: %w", ErrDimensionMismatch)
		}
		out.orig = sOrig
	}

	return out, nil
}

// Raw returns the (possibly defaulted) R×J standard errors.
func (se StdErr) Raw() *mat.Dense { return se.s }

// Alpha returns the R×J rescale factor applied to posterior quantities.
func (se StdErr) Alpha() *mat.Dense { return se.alpha }

// Original resolves the pre-transform standard errors: the explicitly
// supplied original matrix when present, otherwise the working standard
// errors. The result is always non-nil and non-empty.
func (se StdErr) Original() *mat.Dense {
	if se.orig != nil {
		return se.orig
	}

	return se.s
}

// isEmpty reports whether m is nil or has no elements.
func isEmpty(m *mat.Dense) bool {
	if m == nil {
		return true
	}
	r, c := m.Dims()

	return r == 0 || c == 0
}

// onesDense allocates an r×c matrix filled with ones.
func onesDense(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 1.0
	}

	return mat.NewDense(r, c, data)
}
