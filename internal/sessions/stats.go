package sessions

import "github.com/scrobbleworks/playback-tools/internal/scrobble"

// Stat is the per-session reduction of the enriched event table.
// Representative fields (weekday, season, time of day) are taken from the
// session's first event. Cluster is -1 until a clustering run assigns one.
type Stat struct {
	SessionID int

	StreamCount   int
	UniqueSongs   int
	UniqueArtists int
	UniqueAlbums  int

	SessionLength  float64
	Weekday        string
	Season         string
	TimeOfDayStart string

	FirstArtistListens int
	FirstSongListens   int
	FirstAlbumListens  int
	FirstListens       int

	ArtistDiversity  float64
	AlbumDiversity   float64
	SongDiversity    float64
	FirstListenRatio float64

	StartUTS int64
	EndUTS   int64

	Cluster int
}

// Aggregate reduces the enriched, session-assigned event table to one Stat
// per session, ordered by session id. Ratios are unique-count / stream-count
// and always land in [0,1]; degenerate sessions compute to well-defined
// zeros, never NaN.
func Aggregate(events []scrobble.Event) []Stat {
	if len(events) == 0 {
		return nil
	}

	var stats []Stat
	i := 0
	for i < len(events) {
		j := i
		for j < len(events) && events[j].SessionID == events[i].SessionID {
			j++
		}
		stats = append(stats, aggregateSession(events[i:j]))
		i = j
	}
	return stats
}

func aggregateSession(events []scrobble.Event) Stat {
	first := &events[0]
	stat := Stat{
		SessionID:      first.SessionID,
		StreamCount:    len(events),
		SessionLength:  first.SessionLength,
		Weekday:        first.Weekday,
		Season:         first.Season,
		TimeOfDayStart: first.TimeOfDay,
		StartUTS:       first.UTS,
		EndUTS:         events[len(events)-1].UTS,
		Cluster:        -1,
	}

	songs := make(map[string]bool)
	artists := make(map[string]bool)
	albums := make(map[string]bool)
	for i := range events {
		e := &events[i]
		songs[e.Track] = true
		artists[e.PrimaryArtist] = true
		albums[e.Album] = true
		if e.FirstArtistListen {
			stat.FirstArtistListens++
		}
		if e.FirstSongListen {
			stat.FirstSongListens++
		}
		if e.FirstAlbumListen {
			stat.FirstAlbumListens++
		}
		if e.FirstListenAny {
			stat.FirstListens++
		}
	}
	stat.UniqueSongs = len(songs)
	stat.UniqueArtists = len(artists)
	stat.UniqueAlbums = len(albums)

	count := float64(stat.StreamCount)
	stat.ArtistDiversity = float64(stat.UniqueArtists) / count
	stat.AlbumDiversity = float64(stat.UniqueAlbums) / count
	stat.SongDiversity = float64(stat.UniqueSongs) / count
	stat.FirstListenRatio = float64(stat.FirstListens) / count
	return stat
}
