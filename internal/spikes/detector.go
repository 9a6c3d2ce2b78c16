package spikes

import (
	"context"
	"log/slog"
	"time"
)

// Confidence is the discrete alert tier of a detected spike.
type Confidence string

const (
	ConfidenceMedium   Confidence = "MEDIUM"   // 2.0 <= z < 2.5
	ConfidenceHigh     Confidence = "HIGH"     // 2.5 <= z < 3.0
	ConfidenceCritical Confidence = "CRITICAL" // z >= 3.0
)

// Tier thresholds, inclusive on the lower bound of each tier.
const (
	zThresholdMedium   = 2.0
	zThresholdHigh     = 2.5
	zThresholdCritical = 3.0
)

// StatPoint is one entity-day observation together with its trailing rolling
// statistics. Nil rolling fields mean the entity has insufficient trailing
// history; such points produce no output.
type StatPoint struct {
	EntityID      string
	Date          time.Time
	MentionCount  int      // observed count, >= 0
	RollingAvg    *float64 // trailing window mean, current day excluded
	RollingStdDev *float64 // trailing window sample stddev, >= 0
}

// Spike is a reported abnormal mention spike. Field names are a structural
// contract consumed downstream; records exist only for z >= 2.0.
type Spike struct {
	EntityID       string     `json:"entity_id"`
	Date           time.Time  `json:"date"`
	MentionCount   int        `json:"mention_count"`
	BaselineAvg    float64    `json:"baseline_avg"`
	BaselineStdDev float64    `json:"baseline_stddev"`
	ZScore         float64    `json:"z_score"`
	Confidence     Confidence `json:"confidence_level"`
}

// Detector computes standardized deviation scores against trailing
// baselines. Stateless and safe for concurrent use.
type Detector struct {
	logger *slog.Logger
}

// NewDetector creates a spike detector logging through the given logger.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// Detect evaluates a batch of stat points and returns the spikes found, in
// input order. Points with missing baselines are skipped; a zero-stddev
// baseline yields z = 0 and is never flagged, which also avoids division by
// zero. Low or negative deviations are not reported.
func (d *Detector) Detect(ctx context.Context, points []StatPoint) []Spike {
	spikes := make([]Spike, 0)
	skipped := 0
	for _, p := range points {
		if p.RollingAvg == nil || p.RollingStdDev == nil {
			skipped++
			continue
		}

		z := 0.0
		if *p.RollingStdDev != 0 {
			z = (float64(p.MentionCount) - *p.RollingAvg) / *p.RollingStdDev
		}
		if z < zThresholdMedium {
			continue
		}

		spikes = append(spikes, Spike{
			EntityID:       p.EntityID,
			Date:           p.Date,
			MentionCount:   p.MentionCount,
			BaselineAvg:    *p.RollingAvg,
			BaselineStdDev: *p.RollingStdDev,
			ZScore:         z,
			Confidence:     tierFor(z),
		})
	}

	d.logger.DebugContext(ctx, "spike detection completed",
		"points", len(points),
		"skipped_no_baseline", skipped,
		"spikes", len(spikes),
	)
	return spikes
}

func tierFor(z float64) Confidence {
	switch {
	case z >= zThresholdCritical:
		return ConfidenceCritical
	case z >= zThresholdHigh:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}
