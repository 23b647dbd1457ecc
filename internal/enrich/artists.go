package enrich

import (
	"sort"
	"strings"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

// splitArtists parses the raw delimited artist string. The primary artist is
// the first listed performer; featured artists are the tail (empty for a solo
// track). ArtistSorted is the sorted tuple used purely as a grouping key.
func splitArtists(events []scrobble.Event) {
	for i := range events {
		e := &events[i]
		e.ArtistList = strings.Split(e.Artist, ", ")

		sorted := append([]string(nil), e.ArtistList...)
		sort.Strings(sorted)
		e.ArtistSorted = sorted

		e.PrimaryArtist = e.ArtistList[0]
		if len(e.ArtistList) > 1 {
			e.FeaturedArtists = e.ArtistList[1:]
		} else {
			e.FeaturedArtists = nil
		}
	}
}
