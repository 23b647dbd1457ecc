package clustering

import (
	"fmt"
	"strings"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

// Insights is the human-consumable summary of one listening session. It is
// pure presentation over already-computed event fields.
type Insights struct {
	UniqueArtists int
	UniqueAlbums  int
	UniqueSongs   int
	Discoveries   int

	Duration             string
	TimeDescription      string
	StartDateDescription string

	Events []scrobble.Event
}

// SessionInsights summarizes the session with the given id from the enriched
// event table: unique counts, discovery count, a 12-hour clock time range
// (spelling out the end date when the session crosses midnight), and a
// readable duration.
func SessionInsights(events []scrobble.Event, sessionID int) (*Insights, error) {
	var session []scrobble.Event
	for i := range events {
		if events[i].SessionID == sessionID {
			session = append(session, events[i])
		}
	}
	if len(session) == 0 {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}

	artists := make(map[string]bool)
	albums := make(map[string]bool)
	songs := make(map[string]bool)
	discoveries := 0
	for i := range session {
		e := &session[i]
		artists[e.PrimaryArtist] = true
		albums[e.AlbumFinal] = true
		songs[e.Track] = true
		if e.FirstListenAny {
			discoveries++
		}
	}

	first := &session[0]
	last := &session[len(session)-1]
	start := first.DatetimeLocal
	end := last.DatetimeLocal

	timeDescription := readableTime(start) + " till "
	if end.Format("2006-01-02") > start.Format("2006-01-02") {
		timeDescription += fmt.Sprintf("%s, %s %s",
			capitalize(last.Weekday), end.Format("January 02"), readableTime(end))
	} else {
		timeDescription += readableTime(end)
	}

	return &Insights{
		UniqueArtists:        len(artists),
		UniqueAlbums:         len(albums),
		UniqueSongs:          len(songs),
		Discoveries:          discoveries,
		Duration:             formatDuration(end.Sub(start)),
		TimeDescription:      timeDescription,
		StartDateDescription: fmt.Sprintf("%s, %s", capitalize(first.Weekday), start.Format("January 02")),
		Events:               session,
	}, nil
}

// readableTime renders a 12-hour clock string, e.g. "9:05 AM". Midnight
// hours render as "0:xx AM".
func readableTime(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour < 12:
		return fmt.Sprintf("%d:%02d AM", hour, t.Minute())
	case hour == 12:
		return fmt.Sprintf("%d:%02d PM", hour, t.Minute())
	default:
		return fmt.Sprintf("%d:%02d PM", hour-12, t.Minute())
	}
}

// formatDuration renders hours and minutes, or minutes only when the session
// ran under an hour.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d hour%s, %d minute%s",
			hours, plural(hours), minutes, plural(minutes))
	}
	return fmt.Sprintf("%d minute%s", minutes, plural(minutes))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
