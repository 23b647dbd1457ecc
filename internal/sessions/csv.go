package sessions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var statColumns = []string{
	"session_id", "stream_count",
	"song_title_nunique", "primary_artist_nunique", "album_nunique",
	"session_length", "weekday", "season", "time_of_day_start",
	"first_artist_listen_sum", "first_song_listen_sum", "first_album_listen_sum", "first_listen_any_sum",
	"artist_diversity", "album_diversity", "song_diversity", "first_listen_ratio",
}

// WriteStatsCSV writes the per-session statistics table. A cluster column is
// appended when any session carries a cluster assignment.
func WriteStatsCSV(w io.Writer, stats []Stat) error {
	withClusters := false
	for i := range stats {
		if stats[i].Cluster >= 0 {
			withClusters = true
			break
		}
	}

	header := statColumns
	if withClusters {
		header = append(append([]string(nil), statColumns...), "cluster")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range stats {
		s := &stats[i]
		record := []string{
			strconv.Itoa(s.SessionID),
			strconv.Itoa(s.StreamCount),
			strconv.Itoa(s.UniqueSongs),
			strconv.Itoa(s.UniqueArtists),
			strconv.Itoa(s.UniqueAlbums),
			strconv.FormatFloat(s.SessionLength, 'f', -1, 64),
			s.Weekday,
			s.Season,
			s.TimeOfDayStart,
			strconv.Itoa(s.FirstArtistListens),
			strconv.Itoa(s.FirstSongListens),
			strconv.Itoa(s.FirstAlbumListens),
			strconv.Itoa(s.FirstListens),
			strconv.FormatFloat(s.ArtistDiversity, 'f', -1, 64),
			strconv.FormatFloat(s.AlbumDiversity, 'f', -1, 64),
			strconv.FormatFloat(s.SongDiversity, 'f', -1, 64),
			strconv.FormatFloat(s.FirstListenRatio, 'f', -1, 64),
		}
		if withClusters {
			record = append(record, strconv.Itoa(s.Cluster))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing session %d: %w", s.SessionID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
