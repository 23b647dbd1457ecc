// Package scrobble defines the streaming event model and its CSV codec.
package scrobble

import (
	"strings"
	"time"
)

// Event is one recorded track play. The raw fields come straight from a
// last.fm export; everything else is filled in by the enrichment pipeline
// and never mutated once set.
type Event struct {
	UTS     int64
	UTCTime string
	Artist  string // raw comma-space delimited artist string
	Album   string // raw album name, missing values filled with the track name
	Track   string

	ArtistList      []string // split in original order
	ArtistSorted    []string // lexicographically sorted, used as a grouping key
	PrimaryArtist   string
	FeaturedArtists []string
	AlbumFinal      string

	Year          int
	Month         int
	Day           int
	Season        string
	Weekday       string
	Date          string
	Datetime      time.Time // UTC
	DatetimeLocal time.Time
	Hour          int
	TimeOfDay     string

	FirstArtistListen bool
	FirstSongListen   bool
	FirstAlbumListen  bool
	FirstListenAny    bool

	SessionID     int
	SessionLength float64 // hours
}

// ArtistKey returns the canonical grouping key for the event's artist set,
// so that "A, B" and "B, A" unify.
func (e *Event) ArtistKey() string {
	return strings.Join(e.ArtistSorted, "\x1f")
}
