// Package posterior: small shared kernels for the multivariate engines.

package posterior

import (
	"gonum.org/v1/gonum/mat"
)

// scaleCov returns u1[r,c] = u0[r,c]·a[r]·a[c] — the rescale factor
// applied symmetrically to a posterior covariance, without materializing
// diag(a).
func scaleCov(u0 mat.Matrix, a []float64) *mat.Dense {
	n := len(a)
	out := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.Set(r, c, u0.At(r, c)*a[r]*a[c])
		}
	}

	return out
}

// scaleVec multiplies mu elementwise by a, in place, returning mu.
func scaleVec(mu, a []float64) []float64 {
	for i := range mu {
		mu[i] *= a[i]
	}

	return mu
}

// projectVec returns proj · mu as a fresh slice.
func projectVec(proj mat.Matrix, mu []float64) []float64 {
	var out mat.VecDense
	out.MulVec(proj, mat.NewVecDense(len(mu), mu))

	res := make([]float64, out.Len())
	for i := range res {
		res[i] = out.AtVec(i)
	}

	return res
}

// projectCov returns proj · u1 · projᵀ.
func projectCov(proj mat.Matrix, u1 *mat.Dense) *mat.Dense {
	var tmp mat.Dense
	tmp.Mul(proj, u1)

	out := &mat.Dense{}
	out.Mul(&tmp, proj.T())

	return out
}

// traceProduct returns trace(a·b) without forming the product:
// Σ_r Σ_c a[r,c]·b[c,r].
func traceProduct(a, b mat.Matrix) float64 {
	n, _ := a.Dims()
	sum := 0.0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum += a.At(r, c) * b.At(c, r)
		}
	}

	return sum
}

// vecToSlice copies v into a fresh slice.
func vecToSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}

	return out
}

// onesSlice returns a length-n slice of ones.
func onesSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0
	}

	return out
}
