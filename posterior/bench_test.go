package posterior_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlbayes/covariance"
	"github.com/katalvlaran/lvlbayes/posterior"
)

// benchmarkMASH measures a full posterior pass over R conditions,
// J units and P components, on either engine path.
func benchmarkMASH(bench *testing.B, r, j, p int, commonCov bool, rt posterior.ReportType) {
	rng := rand.New(rand.NewSource(1))

	b := mat.NewDense(r, j, nil)
	for i := 0; i < r; i++ {
		for k := 0; k < j; k++ {
			b.Set(i, k, rng.NormFloat64())
		}
	}

	v := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetSym(i, i, 1)
	}

	priors := make([]*mat.SymDense, p)
	for c := range priors {
		u := mat.NewSymDense(r, nil)
		for i := 0; i < r; i++ {
			u.SetSym(i, i, float64(c))
		}
		priors[c] = u
	}

	// Uniform weights: the reduction cost is what we are measuring.
	wdata := make([]float64, p*j)
	for i := range wdata {
		wdata[i] = 1.0 / float64(p)
	}
	weights := mat.NewDense(p, j, wdata)

	engine, err := posterior.NewMASH(b, covariance.StdErr{}, v, nil, nil, priors)
	if err != nil {
		bench.Fatalf("NewMASH failed: %v", err)
	}

	bench.ResetTimer()
	for i := 0; i < bench.N; i++ {
		if commonCov {
			err = engine.ComputeCommonCov(weights, rt)
		} else {
			err = engine.Compute(weights, rt)
		}
		if err != nil {
			bench.Fatalf("Compute failed: %v", err)
		}
	}
}

// BenchmarkMASH_General_R5_J200_P10 — per-unit conjugate updates.
func BenchmarkMASH_General_R5_J200_P10(b *testing.B) {
	benchmarkMASH(b, 5, 200, 10, false, posterior.ReportDefault)
}

// BenchmarkMASH_CommonCov_R5_J200_P10 — broadcast fast path.
func BenchmarkMASH_CommonCov_R5_J200_P10(b *testing.B) {
	benchmarkMASH(b, 5, 200, 10, true, posterior.ReportDefault)
}

// BenchmarkMASH_CommonCov_FullCov_R5_J200_P10 — fast path with the
// centered covariance output switched on.
func BenchmarkMASH_CommonCov_FullCov_R5_J200_P10(b *testing.B) {
	benchmarkMASH(b, 5, 200, 10, true, posterior.ReportFullCov)
}

// BenchmarkASH_J5000_P20 — the univariate engine at scale.
func BenchmarkASH_J5000_P20(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	eff := make([]float64, 5000)
	for i := range eff {
		eff[i] = rng.NormFloat64()
	}
	priors := make([]float64, 20)
	for p := range priors {
		priors[p] = float64(p) * 0.5
	}
	wdata := make([]float64, 20*5000)
	for i := range wdata {
		wdata[i] = 1.0 / 20.0
	}
	weights := mat.NewDense(20, 5000, wdata)

	engine, err := posterior.NewASH(eff, nil, nil, 1, priors)
	if err != nil {
		b.Fatalf("NewASH failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = engine.Compute(weights); err != nil {
			b.Fatalf("Compute failed: %v", err)
		}
	}
}
