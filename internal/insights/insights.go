// Package insights turns scored engine outputs into a categorized,
// human-readable briefing. It is a pure transformation: callers decide how
// to render or persist the result.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"geopulse/internal/correlation"
	"geopulse/internal/spikes"
)

// Severity grades an insight for downstream consumers.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Category names the engine an insight came from.
type Category string

const (
	CategoryCorrelation Category = "correlation"
	CategorySpike       Category = "spike"
	CategoryRisk        Category = "risk"
)

// Insight is one actionable finding.
type Insight struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Headline string   `json:"headline"`
	Detail   string   `json:"detail,omitempty"`
}

// EventScore pairs an event with its composite risk score.
type EventScore struct {
	EventID string  `json:"event_id"`
	Score   float64 `json:"score"`
}

// Briefing is the categorized analysis summary.
type Briefing struct {
	GeneratedAt     time.Time            `json:"generated_at"`
	TopCorrelations []correlation.Result `json:"top_correlations"`
	CriticalSpikes  []spikes.Spike       `json:"critical_spikes"`
	HighRiskEvents  []EventScore         `json:"high_risk_events"`
	Insights        []Insight            `json:"insights"`
}

const (
	maxTopCorrelations = 10
	highRiskThreshold  = 75.0
)

// Builder assembles briefings from engine outputs.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a briefing builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build sorts, filters and narrates the given outputs as of now. Inputs are
// not mutated; insight IDs are freshly generated, everything else is
// deterministic for fixed inputs.
func (b *Builder) Build(ctx context.Context, correlations []correlation.Result, spikeRecords []spikes.Spike, eventScores []EventScore, now time.Time) Briefing {
	briefing := Briefing{
		GeneratedAt:     now,
		TopCorrelations: topCorrelations(correlations),
		CriticalSpikes:  criticalSpikes(spikeRecords),
		HighRiskEvents:  highRiskEvents(eventScores),
	}

	for _, r := range briefing.TopCorrelations {
		direction := "positively"
		if r.Correlation < 0 {
			direction = "negatively"
		}
		briefing.Insights = append(briefing.Insights, Insight{
			ID:       uuid.NewString(),
			Category: CategoryCorrelation,
			Severity: SeverityInfo,
			Headline: fmt.Sprintf("%s and %s move %s (r=%.2f)", r.Source, r.Target, direction, r.Correlation),
			Detail:   fmt.Sprintf("adjusted p=%.4f over %d observations", r.PAdjusted, r.SampleSize),
		})
	}
	for _, s := range briefing.CriticalSpikes {
		briefing.Insights = append(briefing.Insights, Insight{
			ID:       uuid.NewString(),
			Category: CategorySpike,
			Severity: SeverityCritical,
			Headline: fmt.Sprintf("media attention to %s is %.1f standard deviations above baseline", s.EntityID, s.ZScore),
			Detail:   fmt.Sprintf("%d mentions on %s against a baseline of %.1f", s.MentionCount, s.Date.Format("2006-01-02"), s.BaselineAvg),
		})
	}
	for _, e := range briefing.HighRiskEvents {
		briefing.Insights = append(briefing.Insights, Insight{
			ID:       uuid.NewString(),
			Category: CategoryRisk,
			Severity: SeverityWarning,
			Headline: fmt.Sprintf("event %s scores %.0f/100 on the composite risk model", e.EventID, e.Score),
		})
	}

	b.logger.DebugContext(ctx, "briefing assembled",
		"correlations", len(briefing.TopCorrelations),
		"critical_spikes", len(briefing.CriticalSpikes),
		"high_risk_events", len(briefing.HighRiskEvents),
	)
	return briefing
}

// topCorrelations returns up to maxTopCorrelations results ordered by
// absolute coefficient, strongest first.
func topCorrelations(results []correlation.Result) []correlation.Result {
	sorted := append([]correlation.Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].Correlation) > math.Abs(sorted[j].Correlation)
	})
	if len(sorted) > maxTopCorrelations {
		sorted = sorted[:maxTopCorrelations]
	}
	return sorted
}

// criticalSpikes keeps CRITICAL-tier records ordered by z-score descending.
func criticalSpikes(records []spikes.Spike) []spikes.Spike {
	out := make([]spikes.Spike, 0, len(records))
	for _, s := range records {
		if s.Confidence == spikes.ConfidenceCritical {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZScore > out[j].ZScore })
	return out
}

// highRiskEvents keeps events at or above the high-risk threshold, ordered by
// score descending.
func highRiskEvents(scores []EventScore) []EventScore {
	out := make([]EventScore, 0, len(scores))
	for _, e := range scores {
		if e.Score >= highRiskThreshold {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
