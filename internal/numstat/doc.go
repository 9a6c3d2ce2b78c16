// Package numstat provides the shared numeric primitives underneath the
// scoring engines: descriptive statistics, linear rescaling, rank
// transformation, correlation with two-sided significance, first differencing
// and an augmented Dickey-Fuller unit-root test.
//
// All functions are pure and deterministic for fixed inputs. Degenerate
// inputs (constant series, singular regressions) are reported as typed
// errors from geopulse/internal/errors so callers can distinguish "the test
// failed" from "the test rejected".
//
// # Components
//
//   - stats.go: mean, sample standard deviation, rescaling, ranks, differencing
//   - correlate.go: Pearson and Spearman coefficients with t-distribution p-values
//   - adf.go: augmented Dickey-Fuller test with automatic AIC lag selection
//
// Correlation and p-values are built on gonum (stat, stat/distuv); the ADF
// regression uses gonum/mat least squares.
package numstat
