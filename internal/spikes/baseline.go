package spikes

import (
	"fmt"
	"time"

	apperrors "geopulse/internal/errors"
	"geopulse/internal/numstat"
)

// DefaultWindowDays is the default trailing baseline window.
const DefaultWindowDays = 7

// BuildStatPoints derives per-day StatPoints from a contiguous daily mention
// count history for one entity, starting at start. Days with no mentions must
// be present as zero counts.
//
// The rolling mean and sample standard deviation for day i cover exactly the
// window days strictly before it; the observation never contributes to its
// own baseline. Days without a full trailing window get nil rolling stats
// and are skipped by the detector. A window below 2 cannot define a sample
// standard deviation and is rejected.
func BuildStatPoints(entityID string, start time.Time, counts []int, window int) ([]StatPoint, error) {
	if window < 2 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("baseline window must be at least 2 days, got %d", window), nil)
	}

	points := make([]StatPoint, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}

	for i, c := range counts {
		p := StatPoint{
			EntityID:     entityID,
			Date:         start.AddDate(0, 0, i),
			MentionCount: c,
		}
		if i >= window {
			trailing := values[i-window : i]
			mean := numstat.Mean(trailing)
			stddev := numstat.StdDev(trailing)
			p.RollingAvg = &mean
			p.RollingStdDev = &stddev
		}
		points[i] = p
	}
	return points, nil
}
