// Package enrich derives the analysis-ready event table from raw scrobbles:
// artist splits, canonical album names, temporal features and first-listen
// flags, in that order.
package enrich

import (
	"fmt"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

// DefaultTimezone is the local zone used for clock-derived features.
const DefaultTimezone = "America/Los_Angeles"

// Process runs every enrichment stage over the supplied events and returns
// the table sorted ascending by uts. The sort is a precondition for session
// segmentation; callers hand the result straight to sessions.Assign.
func Process(events []scrobble.Event, timezone string) ([]scrobble.Event, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	fillMissingAlbums(events)
	splitArtists(events)
	canonicalizeAlbums(events)
	deriveTemporal(events, loc)
	flagDiscoveries(events)
	return events, nil
}

// fillMissingAlbums substitutes the track name for absent album names, so the
// canonicalizer always has a non-empty candidate set.
func fillMissingAlbums(events []scrobble.Event) {
	for i := range events {
		if events[i].Album == "" {
			events[i].Album = events[i].Track
		}
	}
}
