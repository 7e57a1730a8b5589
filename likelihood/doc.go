// Package likelihood produces the units × components matrix of marginal
// (log-)likelihoods at the heart of the shrinkage model: for every unit j
// with observed effect vector b̂ⱼ and every candidate prior covariance Uₚ,
//
//	lik[j,p] = N( b̂ⱼ ; 0, Vⱼ + Uₚ )
//
// where Vⱼ is the unit's observation-noise covariance. The output feeds
// the external mixture-weight estimation loop (EM or convex program);
// this package only evaluates.
//
// Three call shapes are provided, selected by the caller:
//
//   - Matrix — the general multivariate form. With Options.CommonCov the
//     noise covariance of unit 0 is shared by all units and each
//     component's combined covariance V+Uₚ is Cholesky-factored exactly
//     once, all J units evaluated against that single factorization. This
//     is a distinct code path, not a micro-optimization: it changes which
//     matrix is factorized when, turning O(J·P) factorizations into O(P).
//   - MatrixFromRoots — precomputed inverse-Cholesky roots, either P of
//     them (common covariance) or J·P in unit-major order.
//   - Univariate — the single-condition specialization, vectorized over
//     units with no per-unit matrix work at all.
//
// Degenerate combined covariances follow the gaussian package's
// point-mass fallback instead of erroring; see gaussian.Dmvnorm.
package likelihood
