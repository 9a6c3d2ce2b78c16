package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	apperrors "geopulse/internal/errors"
	"geopulse/internal/numstat"
)

const (
	// minStationarityObs is the smallest aligned pair length the unit-root
	// test is run on; shorter pairs are correlated as-is.
	minStationarityObs = 12
	// minPairObs is the smallest usable pair length after differencing.
	minPairObs = 3
)

// Engine computes statistically filtered pairwise correlations. It holds no
// mutable state and is safe for concurrent use on disjoint inputs.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a correlation engine logging through the given logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// skipReason classifies why a pair produced no candidate. Per-pair problems
// are outcomes, not errors: they never abort the batch.
type skipReason int

const (
	skipNone skipReason = iota
	skipInsufficientData
	skipNumerical
)

// pairStats is a pair that survived computation and awaits the
// multiple-comparison correction.
type pairStats struct {
	source, target string
	coefficient    float64
	pValue         float64
	sampleSize     int
	warnings       []string
}

// Compute runs the full pipeline: align, test pairs, correct, filter.
//
// An empty result with a nil error is valid (too few variables, no shared
// dates, or nothing significant). The only error conditions are invalid
// options and context cancellation.
func (e *Engine) Compute(ctx context.Context, set SeriesSet, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	aligned := alignSeries(set)
	if len(aligned.names) < 2 || aligned.rows == 0 {
		e.logger.InfoContext(ctx, "correlation skipped: nothing to align",
			"variables", len(aligned.names),
			"aligned_rows", aligned.rows,
		)
		return nil, nil
	}

	e.logger.InfoContext(ctx, "starting correlation analysis",
		"variables", len(aligned.names),
		"aligned_rows", aligned.rows,
		"method", string(opts.Method),
		"alpha", opts.Alpha,
		"min_effect_size", opts.MinEffectSize,
		"check_stationarity", opts.CheckStationarity,
	)

	var candidates []pairStats
	for i := 0; i < len(aligned.names); i++ {
		for j := i + 1; j < len(aligned.names); j++ {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("correlation analysis cancelled: %w", ctx.Err())
			default:
			}

			stats, skip := e.computePair(ctx, aligned, i, j, opts)
			if skip != skipNone {
				e.logger.DebugContext(ctx, "pair skipped",
					"source", aligned.names[i],
					"target", aligned.names[j],
					"reason", skip.String(),
				)
				continue
			}
			candidates = append(candidates, stats)
		}
	}

	results := applyBonferroni(candidates, opts)

	e.logger.InfoContext(ctx, "correlation analysis completed",
		"pairs_tested", len(candidates),
		"pairs_reported", len(results),
	)
	return results, nil
}

// computePair produces the raw statistics for one unordered variable pair, or
// the reason it was dropped.
func (e *Engine) computePair(ctx context.Context, aligned alignedSet, i, j int, opts Options) (pairStats, skipReason) {
	x := append([]float64(nil), aligned.values[i]...)
	y := append([]float64(nil), aligned.values[j]...)

	var warnings []string
	if opts.CheckStationarity && len(x) >= minStationarityObs {
		x = e.enforceStationarity(ctx, aligned.names[i], x, opts.Alpha, &warnings)
		y = e.enforceStationarity(ctx, aligned.names[j], y, opts.Alpha, &warnings)

		// Re-align on the most recent overlapping suffix after differencing.
		n := len(x)
		if len(y) < n {
			n = len(y)
		}
		x = x[len(x)-n:]
		y = y[len(y)-n:]
	}

	if len(x) < minPairObs {
		return pairStats{}, skipInsufficientData
	}

	var (
		r, p float64
		err  error
	)
	switch opts.Method {
	case MethodSpearman:
		r, p, err = numstat.SpearmanTest(x, y)
	default:
		r, p, err = numstat.PearsonTest(x, y)
	}
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeInsufficientData) {
			return pairStats{}, skipInsufficientData
		}
		return pairStats{}, skipNumerical
	}

	return pairStats{
		source:      aligned.names[i],
		target:      aligned.names[j],
		coefficient: r,
		pValue:      p,
		sampleSize:  len(x),
		warnings:    warnings,
	}, skipNone
}

// enforceStationarity unit-root tests one series and first-differences it
// when the null is not rejected at alpha, recording a warning. A failing
// test (degenerate series) leaves the series untouched with no warning.
func (e *Engine) enforceStationarity(ctx context.Context, name string, series []float64, alpha float64, warnings *[]string) []float64 {
	res, err := numstat.ADFTest(series, -1)
	if err != nil {
		e.logger.DebugContext(ctx, "unit-root test failed, using series as-is",
			"variable", name,
			"error", err,
		)
		return series
	}
	if res.PValue <= alpha {
		return series
	}

	*warnings = append(*warnings,
		fmt.Sprintf("%s: non-stationary (ADF p=%.4f), applied first difference", name, res.PValue))
	return numstat.Diff(series)
}

// applyBonferroni scales each surviving pair's p-value by the number of
// simultaneous tests and keeps only pairs that are significant under strict
// inequality and meet the effect-size floor.
func applyBonferroni(candidates []pairStats, opts Options) []Result {
	m := float64(len(candidates))
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		adjusted := math.Min(1, c.pValue*m)
		significant := adjusted < opts.Alpha
		if !significant || math.Abs(c.coefficient) < opts.MinEffectSize {
			continue
		}
		results = append(results, Result{
			Source:      c.source,
			Target:      c.target,
			Correlation: c.coefficient,
			PValue:      c.pValue,
			PAdjusted:   adjusted,
			Significant: significant,
			SampleSize:  c.sampleSize,
			Warnings:    c.warnings,
		})
	}
	return results
}

func (s skipReason) String() string {
	switch s {
	case skipInsufficientData:
		return "insufficient_data"
	case skipNumerical:
		return "numerical_failure"
	default:
		return "none"
	}
}
