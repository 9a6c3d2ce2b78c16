package risk

import (
	"math"

	"github.com/go-playground/validator/v10"

	apperrors "geopulse/internal/errors"
)

// Signal is the read-only per-event input record. Nil pointer fields and a
// nil/empty theme list mean the signal is absent; the scorer substitutes the
// documented neutral defaults instead of failing.
type Signal struct {
	GoldsteinScale *float64 `json:"goldstein_scale,omitempty"` // in [-10, 10]
	AvgTone        *float64 `json:"avg_tone,omitempty"`        // in [-100, 100]
	Themes         []string `json:"theme_list,omitempty"`
}

// Weights holds the named component weights of the composite model. Each
// weight lies in [0,1] and together they must sum to 1.0 within
// weightSumTolerance.
type Weights struct {
	Goldstein float64 `json:"goldstein" yaml:"goldstein" validate:"gte=0,lte=1"`
	Tone      float64 `json:"tone" yaml:"tone" validate:"gte=0,lte=1"`
	Themes    float64 `json:"themes" yaml:"themes" validate:"gte=0,lte=1"`
	Intensity float64 `json:"intensity" yaml:"intensity" validate:"gte=0,lte=1"`
}

const weightSumTolerance = 0.01

// DefaultWeights returns the production weighting of the composite model.
func DefaultWeights() Weights {
	return Weights{
		Goldstein: 0.35,
		Tone:      0.25,
		Themes:    0.25,
		Intensity: 0.15,
	}
}

var weightsValidator = validator.New()

// Validate checks ranges and the unit-sum constraint. A violation is a
// configuration error: the scorer is never constructed from invalid weights.
func (w Weights) Validate() error {
	if err := weightsValidator.Struct(w); err != nil {
		return apperrors.NewConfigError("risk weight out of [0,1]", err)
	}
	sum := w.Goldstein + w.Tone + w.Themes + w.Intensity
	if math.Abs(sum-1.0) > weightSumTolerance {
		return apperrors.NewConfigError("risk weights must sum to 1.0", nil).
			WithContext("sum", sum).
			WithContext("tolerance", weightSumTolerance)
	}
	return nil
}
