package enrich

import "github.com/scrobbleworks/playback-tools/internal/scrobble"

// flagDiscoveries marks the first chronological occurrence of each artist,
// (artist, track) pair and (artist, canonical album) pair. Must run on the
// sorted table. Flags are relative to the dataset visible to this pipeline
// run: filtering the table afterwards does not recompute them.
func flagDiscoveries(events []scrobble.Event) {
	seenArtists := make(map[string]bool)
	seenSongs := make(map[string]bool)
	seenAlbums := make(map[string]bool)

	for i := range events {
		e := &events[i]
		songKey := e.PrimaryArtist + " - " + e.Track
		albumKey := e.PrimaryArtist + " - " + e.AlbumFinal

		e.FirstArtistListen = !seenArtists[e.PrimaryArtist]
		e.FirstSongListen = !seenSongs[songKey]
		e.FirstAlbumListen = !seenAlbums[albumKey]
		e.FirstListenAny = e.FirstArtistListen || e.FirstSongListen || e.FirstAlbumListen

		seenArtists[e.PrimaryArtist] = true
		seenSongs[songKey] = true
		seenAlbums[albumKey] = true
	}
}
