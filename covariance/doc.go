// Package covariance assembles the observation-noise covariance used by
// the lvlbayes likelihood and posterior engines, and performs the
// conjugate Gaussian-Gaussian update on it.
//
// Three concerns live here:
//
//   - Observation builds diag(s)·V·diag(s) — per-unit standard errors s
//     applied to a shared base correlation V — optionally wrapped in a
//     fixed linear transform L·(·)·Lᵀ (the common-baseline contrast). The
//     diagonal matrices are never materialized: scaling is elementwise on
//     rows and columns, which matters when the condition count grows.
//   - Precision / PosteriorCov / PosteriorMean implement the closed-form
//     conjugate update: if b̂ ~ N(b, V) and b ~ N(0, U), then b|b̂ is
//     N(μ₁, U₁) with U₁ = U·(V⁻¹·U + I)⁻¹ and μ₁ = U₁·V⁻¹·b̂.
//   - StdErr is the immutable standard-error adapter: it resolves the
//     "original" (pre-transform) standard errors whenever they are needed
//     and a transformed version was never supplied, and carries the
//     rescale factor that maps posterior quantities back to the original
//     effect scale.
//
// A singular system in PosteriorCov (V⁻¹·U + I not invertible) is a data
// or model error: the inversion error is propagated, never masked.
package covariance
