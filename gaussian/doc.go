// Package gaussian provides the normal-distribution primitives underneath
// the lvlbayes likelihood and posterior engines.
//
// The package covers four concerns:
//
//   - Univariate densities: Dnorm evaluates the elementwise normal density
//     (log or linear) over parallel value/mean/variance slices.
//   - Multivariate densities: Dmvnorm and DmvnormBatch evaluate points
//     against an R×R covariance, factoring it once per call; InvCholRoot
//     captures a reusable inverse-Cholesky factor so repeated evaluations
//     against the same covariance skip refactorization entirely
//     (DmvnormRoot, DmvnormBatchRoot).
//   - Tail probabilities: Pnorm computes normal tail mass through the
//     complementary error function for numerical stability far from the
//     mean.
//   - Softmax: overflow-safe exponential normalization.
//
// Degenerate covariances are not an error here. When Cholesky
// factorization fails, the density collapses to a point mass at the mean:
// evaluation away from the mean returns 0 (−Inf in log form) and
// evaluation at the mean (within PointMassTol) returns +Inf. Callers that
// need factorization failures surfaced should construct an InvCholRoot
// and handle ErrNotPositiveDefinite.
//
// All functions are pure and deterministic; none retain references to
// their inputs.
package gaussian
