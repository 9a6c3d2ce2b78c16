package correlation

import (
	"time"

	apperrors "geopulse/internal/errors"
)

// Method selects the correlation coefficient.
type Method string

const (
	// MethodPearson measures linear association.
	MethodPearson Method = "pearson"
	// MethodSpearman measures monotonic association via rank transforms.
	MethodSpearman Method = "spearman"
)

// Sample is one dated observation of a signal series. A NaN value marks a
// missing observation and is dropped during alignment.
type Sample struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SeriesSet maps a variable name to its observations. Series may differ in
// length and date coverage; the engine aligns them by date intersection
// before any computation.
type SeriesSet map[string][]Sample

// Options configures one Compute call.
type Options struct {
	Method            Method  // correlation coefficient, default pearson
	Alpha             float64 // significance level in (0,1), default 0.05
	MinEffectSize     float64 // minimum |coefficient| to report, default 0.7
	CheckStationarity bool    // unit-root test + differencing, default true
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Method:            MethodPearson,
		Alpha:             0.05,
		MinEffectSize:     0.7,
		CheckStationarity: true,
	}
}

// Validate checks the options. Violations are validation errors: they abort
// the call before any pair is computed.
func (o Options) Validate() error {
	if o.Method != MethodPearson && o.Method != MethodSpearman {
		return apperrors.NewValidationError("unknown correlation method", nil).
			WithContext("method", string(o.Method))
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return apperrors.NewValidationError("alpha must be in (0,1)", nil).
			WithContext("alpha", o.Alpha)
	}
	if o.MinEffectSize < 0 || o.MinEffectSize > 1 {
		return apperrors.NewValidationError("min effect size must be in [0,1]", nil).
			WithContext("min_effect_size", o.MinEffectSize)
	}
	return nil
}

// Result is one reported variable pair. Field names are a structural
// contract consumed by dashboards and report generators; emitted only when
// Significant is true and |Correlation| meets the effect-size floor.
type Result struct {
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Correlation float64  `json:"correlation"`
	PValue      float64  `json:"p_value"`
	PAdjusted   float64  `json:"p_adjusted"`
	Significant bool     `json:"significant"`
	SampleSize  int      `json:"sample_size"`
	Warnings    []string `json:"warnings,omitempty"`
}
