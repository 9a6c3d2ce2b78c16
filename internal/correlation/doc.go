// Package correlation implements statistically filtered pairwise correlation
// discovery over named, date-indexed signal series.
//
// The engine aligns all series by date intersection, optionally enforces
// stationarity per pair with an augmented Dickey-Fuller test (first
// differencing any series whose unit-root null is not rejected), computes
// Pearson or Spearman coefficients with two-sided p-values, applies a
// Bonferroni family-wise correction across all tested pairs, and reports only
// pairs that are both significant and above the configured effect size.
//
// # Failure policy
//
// Failures local to one pair never abort a batch: pairs with fewer than 3
// usable observations, or whose coefficient is numerically undefined
// (constant series), are dropped silently and do not count toward the
// multiple-comparison correction. A unit-root test that itself fails leaves
// the series undifferenced with no warning; a test that finds
// non-stationarity attaches an informational warning to the pair's result.
// An empty result set is a valid, non-error outcome.
//
// # Usage
//
//	engine := correlation.NewEngine(slog.Default())
//	results, err := engine.Compute(ctx, set, correlation.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err) // only configuration/validation problems land here
//	}
//	for _, r := range results {
//	    fmt.Printf("%s ~ %s: r=%.3f (p_adj=%.4f)\n", r.Source, r.Target, r.Correlation, r.PAdjusted)
//	}
package correlation
