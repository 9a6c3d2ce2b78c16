// Package domain holds the cross-boundary data contracts of the scoring
// engine: the raw event record shape and the interfaces the excluded
// collaborators (event persistence, external series acquisition) must
// satisfy. The engine only ever reads these records; it never fetches or
// persists them.
package domain

import (
	"context"
	"time"
)

// Event is one coded geopolitical event as the record store holds it. The
// scoring layer consumes already-parsed theme lists and event metadata,
// never raw documents.
type Event struct {
	EventID        string    `json:"event_id"`
	Date           time.Time `json:"date"`
	Actor1         string    `json:"actor1,omitempty"`
	Actor2         string    `json:"actor2,omitempty"`
	CountryCode    string    `json:"country_code,omitempty"`
	GoldsteinScale *float64  `json:"goldstein_scale,omitempty"` // in [-10, 10]
	AvgTone        *float64  `json:"avg_tone,omitempty"`        // in [-100, 100]
	Themes         []string  `json:"themes,omitempty"`
	MentionCount   int       `json:"mention_count"`
	SourceURL      string    `json:"source_url,omitempty"`
}

// EventFilter narrows an EventStore query.
type EventFilter struct {
	EntityIDs    []string  // match any of these event/entity identifiers
	CountryCodes []string  // ISO country codes
	From, To     time.Time // inclusive date range
}

// EventStore is the persistence collaborator: time-range and
// identifier-filtered retrieval of raw events. Implementations live outside
// this module.
type EventStore interface {
	Events(ctx context.Context, filter EventFilter) ([]Event, error)
}

// SeriesPoint is one dated observation of a named macro series.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SeriesProvider is the acquisition collaborator: named macroeconomic or
// media-volume series by date range. Implementations (HTTP, SQL, warehouse
// clients) live outside this module.
type SeriesProvider interface {
	Series(ctx context.Context, name string, from, to time.Time) ([]SeriesPoint, error)
}
