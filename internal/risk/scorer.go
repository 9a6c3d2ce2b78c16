package risk

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"geopulse/internal/numstat"
)

// Sub-score constants of the hand-tuned step functions; thresholds are
// preserved exactly, not re-derived.
const (
	neutralSubScore = 50.0

	presenceNoMatch    = 20.0
	presenceOneMatch   = 60.0
	presenceTwoMatches = 80.0
	presenceManyScore  = 100.0

	intensityNoMatch  = 20.0
	intensityLowScore = 50.0 // 1-2 occurrences
	intensityMidScore = 75.0 // 3-5 occurrences
	intensityMaxScore = 100.0
)

// Scorer computes composite risk scores. It is pure and safe for concurrent
// use; construct one per weight configuration and share it.
type Scorer struct {
	weights  Weights
	registry *ThemeRegistry
	logger   *slog.Logger
}

// NewScorer validates the weights eagerly and returns a scorer bound to the
// given theme registry. A nil registry uses the built-in defaults.
func NewScorer(weights Weights, registry *ThemeRegistry, logger *slog.Logger) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewThemeRegistry(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{weights: weights, registry: registry, logger: logger}, nil
}

// Score computes the composite risk score in [0,100] for one event signal.
// Absent fields degrade to the documented neutral defaults; Score never
// fails for well-typed input.
func (s *Scorer) Score(signal Signal) float64 {
	goldstein := invertedSubScore(signal.GoldsteinScale, 10)
	tone := invertedSubScore(signal.AvgTone, 100)
	presence := s.presenceSubScore(signal.Themes)
	intensity := s.intensitySubScore(signal.Themes)

	composite := s.weights.Goldstein*goldstein +
		s.weights.Tone*tone +
		s.weights.Themes*presence +
		s.weights.Intensity*intensity

	// Clamp to absorb floating-point drift at the boundaries.
	return numstat.Clamp(composite, 0, 100)
}

// ScoreBatch scores a batch concurrently with bounded parallelism, returning
// scores in input order. The scorer itself stays pure; this is caller-side
// fan-out convenience for large batches.
func (s *Scorer) ScoreBatch(ctx context.Context, signals []Signal) ([]float64, error) {
	scores := make([]float64, len(signals))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range signals {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			scores[i] = s.Score(signals[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "scored risk batch", "signals", len(signals))
	return scores, nil
}

// invertedSubScore treats an absent value as 0, inverts its sign so conflict
// (negative input) maps to high risk, then rescales [-bound, bound] to
// [0, 100].
func invertedSubScore(value *float64, bound float64) float64 {
	v := 0.0
	if value != nil {
		v = *value
	}
	return numstat.Rescale(-v, -bound, bound, 0, 100)
}

// presenceSubScore is a step function over the number of distinct matching
// themes: none available -> neutral, 0 -> 20, 1 -> 60, 2 -> 80, 3+ -> 100.
func (s *Scorer) presenceSubScore(themes []string) float64 {
	if len(themes) == 0 {
		return neutralSubScore
	}
	switch matches := s.registry.DistinctMatches(themes); {
	case matches == 0:
		return presenceNoMatch
	case matches == 1:
		return presenceOneMatch
	case matches == 2:
		return presenceTwoMatches
	default:
		return presenceManyScore
	}
}

// intensitySubScore is a step function over total high-risk token
// occurrences: none available -> neutral, 0 -> 20, 1-2 -> 50, 3-5 -> 75,
// 6+ -> 100.
func (s *Scorer) intensitySubScore(themes []string) float64 {
	if len(themes) == 0 {
		return neutralSubScore
	}
	switch occurrences := s.registry.TotalOccurrences(themes); {
	case occurrences == 0:
		return intensityNoMatch
	case occurrences <= 2:
		return intensityLowScore
	case occurrences <= 5:
		return intensityMidScore
	default:
		return intensityMaxScore
	}
}
