package analysis

import (
	"fmt"
	"io"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

// WriteReport writes the plain-text listening report used for email
// delivery: the period overview followed by a session summary.
func WriteReport(w io.Writer, user string, ov *Overview, stats []sessions.Stat) error {
	const dateFormat = "2006-01-02"
	fmt.Fprintf(w, "Listening report for %s\n", user)
	fmt.Fprintf(w, "Period: %s to %s\n\n", ov.Start.Format(dateFormat), ov.End.Format(dateFormat))

	fmt.Fprintf(w, "Total streams: %d\n", ov.TotalStreams)
	fmt.Fprintf(w, "Most active day: %s (%d streams)\n", ov.TopDate, ov.TopDateStreams)
	fmt.Fprintf(w, "Most streamed artist: %s (%d streams)\n", ov.TopArtist, ov.TopArtistStreams)
	fmt.Fprintf(w, "Most streamed song: %s by %s (%d streams)\n", ov.TopSong, ov.TopSongArtist, ov.TopSongStreams)
	fmt.Fprintf(w, "Most streamed album: %s by %s (%d streams)\n\n", ov.TopAlbum, ov.TopAlbumArtist, ov.TopAlbumStreams)

	inPeriod := filterStats(stats, ov.Start, ov.End)
	if len(inPeriod) == 0 {
		fmt.Fprintf(w, "No listening sessions in this period.\n")
		return nil
	}

	var totalLength, totalDiversity float64
	discoveries := 0
	longest := inPeriod[0]
	for _, s := range inPeriod {
		totalLength += s.SessionLength
		totalDiversity += s.ArtistDiversity
		discoveries += s.FirstListens
		if s.SessionLength > longest.SessionLength {
			longest = s
		}
	}
	n := float64(len(inPeriod))
	fmt.Fprintf(w, "Listening sessions: %d\n", len(inPeriod))
	fmt.Fprintf(w, "Average session length: %.2f hours\n", totalLength/n)
	fmt.Fprintf(w, "Average artist diversity: %.2f\n", totalDiversity/n)
	fmt.Fprintf(w, "Discoveries: %d\n", discoveries)
	fmt.Fprintf(w, "Longest session: %.2f hours on %s (%d streams)\n",
		longest.SessionLength,
		time.Unix(longest.StartUTS, 0).UTC().Format(dateFormat),
		longest.StreamCount)
	return nil
}

func filterStats(stats []sessions.Stat, start, end time.Time) []sessions.Stat {
	var out []sessions.Stat
	for _, s := range stats {
		begin := time.Unix(s.StartUTS, 0).UTC()
		if !begin.Before(start) && begin.Before(end) {
			out = append(out, s)
		}
	}
	return out
}
