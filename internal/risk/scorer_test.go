package risk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "geopulse/internal/errors"
)

func fptr(v float64) *float64 { return &v }

func defaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultWeights(), nil, nil)
	require.NoError(t, err)
	return s
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"equal split", Weights{0.25, 0.25, 0.25, 0.25}, false},
		{"within tolerance", Weights{0.35, 0.25, 0.25, 0.155}, false},
		{"sum too low", Weights{0.2, 0.2, 0.2, 0.2}, true},
		{"sum too high", Weights{0.5, 0.3, 0.3, 0.2}, true},
		{"negative weight", Weights{-0.1, 0.5, 0.4, 0.2}, true},
		{"weight above one", Weights{1.1, 0, 0, -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewScorer_RejectsInvalidWeights(t *testing.T) {
	_, err := NewScorer(Weights{0.9, 0.9, 0.9, 0.9}, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestScore_GoldsteinRegression(t *testing.T) {
	// Goldstein -10 with everything else absent: 0.35*100 plus neutral 50s
	// for tone, themes and intensity = 67.5. Literal regression case.
	s := defaultScorer(t)
	got := s.Score(Signal{GoldsteinScale: fptr(-10)})
	assert.InDelta(t, 67.5, got, 1e-9)
}

func TestScore_SubScoreMapping(t *testing.T) {
	s := defaultScorer(t)

	tests := []struct {
		name     string
		signal   Signal
		expected float64
	}{
		{"all absent is neutral", Signal{}, 50.0},
		{"max cooperation", Signal{GoldsteinScale: fptr(10)}, 32.5},
		{"max conflict tone", Signal{AvgTone: fptr(-100)}, 62.5},
		{"max positive tone", Signal{AvgTone: fptr(100)}, 37.5},
		{
			"themes present without matches",
			Signal{Themes: []string{"AGRICULTURE", "TOURISM"}},
			// presence 20 and intensity 20 against neutral goldstein/tone.
			0.35*50 + 0.25*50 + 0.25*20 + 0.15*20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Score(tt.signal), 1e-9)
		})
	}
}

func TestScore_ThemeStepFunctions(t *testing.T) {
	s := defaultScorer(t)

	presence := func(themes []string) float64 { return s.presenceSubScore(themes) }
	intensity := func(themes []string) float64 { return s.intensitySubScore(themes) }

	t.Run("presence", func(t *testing.T) {
		assert.Equal(t, 50.0, presence(nil))
		assert.Equal(t, 20.0, presence([]string{"AGRICULTURE"}))
		assert.Equal(t, 60.0, presence([]string{"PROTEST"}))
		assert.Equal(t, 80.0, presence([]string{"PROTEST", "WAR"}))
		assert.Equal(t, 100.0, presence([]string{"PROTEST", "WAR", "CRISIS"}))
		assert.Equal(t, 100.0, presence([]string{"PROTEST", "WAR", "CRISIS", "RIOT"}))
	})

	t.Run("presence deduplicates themes", func(t *testing.T) {
		assert.Equal(t, 60.0, presence([]string{"PROTEST", "PROTEST", "protest"}))
	})

	t.Run("intensity", func(t *testing.T) {
		assert.Equal(t, 50.0, intensity(nil))
		assert.Equal(t, 20.0, intensity([]string{"AGRICULTURE"}))
		assert.Equal(t, 50.0, intensity([]string{"PROTEST"}))
		assert.Equal(t, 50.0, intensity([]string{"PROTEST", "WAR"}))
		assert.Equal(t, 75.0, intensity([]string{"PROTEST", "WAR", "CRISIS"}))
		assert.Equal(t, 75.0, intensity([]string{"PROTEST", "PROTEST", "PROTEST", "WAR", "CRISIS"}))
		assert.Equal(t, 100.0, intensity([]string{"WAR", "WAR", "WAR", "WAR", "WAR", "WAR"}))
	})

	t.Run("substring match on composite identifiers", func(t *testing.T) {
		assert.Equal(t, 60.0, presence([]string{"CRISISLEX_CRISISLEXREC"}))
		assert.Equal(t, 50.0, intensity([]string{"CRISISLEX_CRISISLEXREC"}))
	})
}

func TestScore_StaysBounded(t *testing.T) {
	weightSets := []Weights{
		DefaultWeights(),
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		{0.25, 0.25, 0.25, 0.25},
	}
	signals := []Signal{
		{},
		{GoldsteinScale: fptr(-10), AvgTone: fptr(-100), Themes: []string{"WAR", "CRISIS", "RIOT", "WAR"}},
		{GoldsteinScale: fptr(10), AvgTone: fptr(100), Themes: []string{"TOURISM"}},
		{GoldsteinScale: fptr(0)},
		{Themes: []string{"PROTEST"}},
	}

	for _, w := range weightSets {
		s, err := NewScorer(w, nil, nil)
		require.NoError(t, err)
		for _, sig := range signals {
			got := s.Score(sig)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := defaultScorer(t)
	sig := Signal{GoldsteinScale: fptr(-4.2), AvgTone: fptr(-12.5), Themes: []string{"PROTEST", "SANCTIONS"}}
	assert.Equal(t, s.Score(sig), s.Score(sig))
}

func TestScoreBatch(t *testing.T) {
	s := defaultScorer(t)
	signals := []Signal{
		{GoldsteinScale: fptr(-10)},
		{},
		{AvgTone: fptr(-100)},
		{Themes: []string{"WAR", "CRISIS", "RIOT"}},
	}

	t.Run("matches individual scores in order", func(t *testing.T) {
		got, err := s.ScoreBatch(context.Background(), signals)
		require.NoError(t, err)
		require.Len(t, got, len(signals))
		for i, sig := range signals {
			assert.Equal(t, s.Score(sig), got[i])
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.ScoreBatch(ctx, signals)
		assert.Error(t, err)
	})
}

func TestThemeRegistry(t *testing.T) {
	t.Run("custom tokens are normalized", func(t *testing.T) {
		r := NewThemeRegistry([]string{" Coup ", "BLOCKADE", ""})
		assert.Equal(t, []string{"coup", "blockade"}, r.Tokens())
		assert.Equal(t, 1, r.DistinctMatches([]string{"MILITARY_COUP"}))
		assert.Equal(t, 0, r.DistinctMatches([]string{"WAR"}))
	})

	t.Run("empty falls back to defaults", func(t *testing.T) {
		r := NewThemeRegistry(nil)
		assert.Equal(t, DefaultHighRiskTokens(), r.Tokens())
	})

	t.Run("tokens returns a copy", func(t *testing.T) {
		r := NewThemeRegistry(nil)
		r.Tokens()[0] = "mutated"
		assert.Equal(t, DefaultHighRiskTokens(), r.Tokens())
	})
}
