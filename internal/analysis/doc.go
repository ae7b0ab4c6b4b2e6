// Package analysis provides post-run analysis of integration results.
//
//   - [PowerSpectrum]: frequency content of a recorded state component
//   - [ObservedOrder]: empirical convergence order from an error-vs-dt
//     sweep
package analysis
