// Package analysis computes period summaries over the enriched event table.
package analysis

import (
	"fmt"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

// Overview holds the headline numbers for one period: totals, the most
// active day, and the most streamed artist, song, and album.
type Overview struct {
	Start time.Time
	End   time.Time

	TotalStreams int

	TopDate        string
	TopDateStreams int

	TopArtist        string
	TopArtistStreams int

	TopSong        string
	TopSongArtist  string
	TopSongStreams int

	TopAlbum        string
	TopAlbumArtist  string
	TopAlbumStreams int
}

// BuildOverview summarizes events whose UTC instant falls in [start, end).
// Ties for "most streamed" go to the value first seen in the period.
func BuildOverview(events []scrobble.Event, start, end time.Time) (*Overview, error) {
	var filtered []scrobble.Event
	for i := range events {
		if !events[i].Datetime.Before(start) && events[i].Datetime.Before(end) {
			filtered = append(filtered, events[i])
		}
	}
	if len(filtered) == 0 {
		const dateFormat = "2006-01-02"
		return nil, fmt.Errorf("no streams between %s and %s",
			start.Format(dateFormat), end.Format(dateFormat))
	}

	dates := newCounter()
	artists := newCounter()
	songs := newCounter()
	albums := newCounter()
	for i := range filtered {
		e := &filtered[i]
		dates.add(e.Date)
		artists.add(e.PrimaryArtist)
		songs.add(e.Track)
		albums.add(e.AlbumFinal)
	}

	ov := &Overview{
		Start:        start,
		End:          end,
		TotalStreams: len(filtered),
	}
	ov.TopDate, ov.TopDateStreams = dates.top()
	ov.TopArtist, ov.TopArtistStreams = artists.top()
	ov.TopSong, ov.TopSongStreams = songs.top()
	ov.TopAlbum, ov.TopAlbumStreams = albums.top()

	// Attribute song and album to the raw artist string of their first play.
	for i := range filtered {
		e := &filtered[i]
		if ov.TopSongArtist == "" && e.Track == ov.TopSong {
			ov.TopSongArtist = e.Artist
		}
		if ov.TopAlbumArtist == "" && e.AlbumFinal == ov.TopAlbum {
			ov.TopAlbumArtist = e.Artist
		}
	}
	return ov, nil
}

// counter tallies values while remembering first-seen order, so maximum
// selection is deterministic.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(value string) {
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

func (c *counter) top() (string, int) {
	best := ""
	bestCount := -1
	for _, value := range c.order {
		if c.counts[value] > bestCount {
			best = value
			bestCount = c.counts[value]
		}
	}
	return best, bestCount
}
