// Package posterior computes per-unit posterior summaries under a
// mixture of multivariate-normal priors, given mixture-component weights
// estimated elsewhere: posterior mean, marginal standard deviation,
// optional full covariance, probability-of-negative and
// probability-of-zero — combined across mixture components.
//
// Three engines share one accumulator:
//
//   - MASH   — the full multivariate engine: per-unit noise precision,
//     per-component conjugate update, optional rescale factor and optional
//     linear projection into contrast/baseline coordinates (rescaling
//     happens before projection).
//   - ASH    — the single-condition specialization: closed-form scalar
//     posterior, no matrix inversion anywhere.
//   - SERMix — the single-effect-regression variant used by a sparse
//     multivariate regression model: MASH's math plus a per-component
//     second-moment aggregate across units, emitted as the EM sufficient
//     statistic trace(Uₚ⁻¹·M₂ₚ)/R for an external prior-scale update.
//
// MASH and SERMix each carry a common-covariance fast path
// (ComputeCommonCov): when every unit shares one noise covariance, each
// component's posterior quantities are computed once and broadcast across
// units. The fast path and the general path produce identical output to
// floating tolerance; only the factorization schedule differs.
//
// Two numerical edge cases are absorbed, not surfaced (they have exact
// statistical meaning):
//
//   - zero posterior standard deviation in an output dimension forces
//     probability-of-negative to 0 and probability-of-zero to 1 there,
//     overriding the tail formula which is undefined at zero scale;
//   - the weighted mixture variance is always formed as
//     Var = E[X²] − (E[X])², elementwise, in one shared code path.
//
// Engines hold read-only references to their inputs for the duration of
// a Compute call and never mutate caller-supplied caches. Weight columns
// are assumed to be probability distributions (non-negative, summing to
// one per unit); that is a caller invariant, deliberately not enforced.
package posterior
