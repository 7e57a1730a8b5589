// Package lvlbayes is a numerical core for Bayesian multivariate shrinkage:
// empirical-Bayes posterior summaries for noisy effect estimates observed
// across many conditions, under a mixture of multivariate-normal priors.
//
// 🚀 What is lvlbayes?
//
//	A focused, deterministic library that brings together:
//		• Gaussian primitives: scalar & multivariate normal densities,
//		  reusable inverse-Cholesky roots, erfc-based tail probabilities
//		• Covariance toolkit: observation-covariance builder, conjugate
//		  Gaussian-Gaussian posterior update, standard-error adapter
//		• Likelihood engine: units × components (log-)likelihood matrices
//		  with a shared-factorization fast path for common covariances
//		• Posterior engines: multivariate (MASH), univariate (ASH) and
//		  single-effect-regression mixture summaries — mean, SD, covariance,
//		  probability-of-negative and probability-of-zero per unit
//
// ✨ Why choose lvlbayes?
//
//   - Deterministic – fixed loop orders, no global state, no randomness
//   - Honest numerics – singular covariances collapse to documented
//     point-mass behavior; zero posterior variance forces exact zero/one
//     tail probabilities instead of NaNs
//   - Composable – the outer mixture-weight estimation (EM / convex
//     optimization) stays outside; this core only evaluates and summarizes
//
// Everything is organized under four subpackages:
//
//	gaussian/   — density & tail primitives, softmax
//	covariance/ — observation covariance, conjugate update, SE adapter
//	likelihood/ — J×P likelihood matrices (general, precomputed, univariate)
//	posterior/  — MASH / ASH / SER-mixture posterior summaries
//
// Data flows one direction: (effect, standard error) pairs and candidate
// prior covariances enter likelihood/, whose output drives an external
// weight-estimation loop; the resulting weights re-enter posterior/
// together with the same raw inputs to produce per-unit summaries.
//
//	go get github.com/katalvlaran/lvlbayes
package lvlbayes
