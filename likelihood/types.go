// Package likelihood: options and defaults.

package likelihood

// Default option values (single source of truth; DefaultOptions must
// mirror these).
const (
	// DefaultLog — likelihoods are returned on the linear scale unless
	// log form is requested.
	DefaultLog = false

	// DefaultCommonCov — the general per-unit path is the safe default;
	// the shared-factorization path must be opted into by callers who
	// know every unit carries the same noise covariance.
	DefaultCommonCov = false
)

// Options configures likelihood evaluation.
//
// Fields:
//   - Log       — return log-likelihoods instead of linear densities.
//   - CommonCov — all units share one noise covariance: factor each
//     component's combined covariance once and broadcast across units.
//
// Example:
//
//	opts := likelihood.DefaultOptions()
//	opts.Log = true
//	lik, err := likelihood.Matrix(b, s, v, nil, priors, opts)
type Options struct {
	Log       bool
	CommonCov bool
}

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return Options{
		Log:       DefaultLog,
		CommonCov: DefaultCommonCov,
	}
}
