package enrich

import (
	"regexp"
	"strings"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

// Raw album tagging is noisy: singles tagged with the track name, deluxe
// re-releases, regional editions. For every (artist set, track) pair observed
// anywhere in the log, one canonical album name is chosen by a cascade that
// prefers removing noisy variants over popularity, with "most scrobbled"
// as the tie-break of last resort.

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	parenthetical   = regexp.MustCompile(` ?[\(\[][^\)\]]*[\)\]]`)
)

var specialEditionMarkers = []string{"deluxe", "edition", "expanded", "anniversary"}

type trackKey struct {
	artists string
	track   string
}

// albumGroup holds every raw album name observed for one (artist set, track)
// pair, in order of first appearance, with scrobble counts.
type albumGroup struct {
	unique    []string
	counts    map[string]int
	firstSeen map[string]int
}

func canonicalizeAlbums(events []scrobble.Event) {
	groups := make(map[trackKey]*albumGroup)
	for i := range events {
		e := &events[i]
		key := trackKey{artists: e.ArtistKey(), track: e.Track}
		g := groups[key]
		if g == nil {
			g = &albumGroup{
				counts:    make(map[string]int),
				firstSeen: make(map[string]int),
			}
			groups[key] = g
		}
		if _, seen := g.counts[e.Album]; !seen {
			g.unique = append(g.unique, e.Album)
			g.firstSeen[e.Album] = i
		}
		g.counts[e.Album]++
	}

	final := make(map[trackKey]string, len(groups))
	for key, g := range groups {
		final[key] = chooseAlbum(key.track, g)
	}
	for i := range events {
		e := &events[i]
		e.AlbumFinal = final[trackKey{artists: e.ArtistKey(), track: e.Track}]
	}
}

// chooseAlbum applies the canonicalization cascade to one group's candidate
// set. Each step either settles on a single name or narrows the pool for the
// next step; the pool is never empty when popularity is consulted.
func chooseAlbum(track string, g *albumGroup) string {
	if len(g.unique) == 1 {
		return g.unique[0]
	}

	// Drop names that are just the track name again (singles).
	trackCleaned := normalizeName(track)
	var noSingles []string
	for _, album := range g.unique {
		if normalizeName(album) != trackCleaned {
			noSingles = append(noSingles, album)
		}
	}
	if len(noSingles) == 1 {
		return noSingles[0]
	}
	if len(noSingles) == 0 {
		return mostPopular(g, nil)
	}

	// Prefer names that don't look like special editions.
	var noSpecial []string
	for _, album := range noSingles {
		if !isSpecialEdition(album) {
			noSpecial = append(noSpecial, album)
		}
	}
	if len(noSpecial) == 1 {
		return noSpecial[0]
	}
	pool := noSpecial
	if len(pool) == 0 {
		pool = noSingles
	}

	// Strip parenthetical/bracketed suffixes and deduplicate.
	var stripped []string
	seen := make(map[string]bool)
	for _, album := range pool {
		s := parenthetical.ReplaceAllString(album, "")
		if !seen[s] {
			seen[s] = true
			stripped = append(stripped, s)
		}
	}
	if len(stripped) == 1 {
		return stripped[0]
	}
	return mostPopular(g, stripped)
}

// mostPopular returns the most scrobbled album name for the group, restricted
// to candidates when any of them match a raw name; ties are broken by earliest
// first appearance in the log. A nil or unmatchable candidate set falls back
// to the full raw pool, which is non-empty by construction.
func mostPopular(g *albumGroup, candidates []string) string {
	pool := candidates
	if len(pool) > 0 {
		var matched []string
		for _, c := range pool {
			if _, ok := g.counts[c]; ok {
				matched = append(matched, c)
			}
		}
		pool = matched
	}
	if len(pool) == 0 {
		pool = g.unique
	}

	best := pool[0]
	for _, album := range pool[1:] {
		if g.counts[album] > g.counts[best] ||
			(g.counts[album] == g.counts[best] && g.firstSeen[album] < g.firstSeen[best]) {
			best = album
		}
	}
	return best
}

func normalizeName(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

func isSpecialEdition(album string) bool {
	cleaned := normalizeName(album)
	for _, marker := range specialEditionMarkers {
		if strings.Contains(cleaned, marker) {
			return true
		}
	}
	return false
}
