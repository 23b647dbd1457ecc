package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

func (s *Store) GetLastUpdated(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM User WHERE name = ?", user)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}

func (s *Store) GetLatestListen(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT date FROM Listen WHERE user = ? ORDER BY date DESC LIMIT 1", user)
	var date int64
	err := row.Scan(&date)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning latest listen: %w", err)
	}
	return time.Unix(date, 0), nil
}

// utcTimeFormat matches the serialized timestamp column of a last.fm CSV
// export.
const utcTimeFormat = "02 Jan 2006, 15:04"

// GetScrobbles returns the user's raw listening events ordered by timestamp,
// ready for the enrichment pipeline.
func (s *Store) GetScrobbles(user string) ([]scrobble.Event, error) {
	const query = `
	SELECT Track.artist, Track.album, Track.name, Listen.date
	FROM Listen
	INNER JOIN Track ON Track.id = Listen.track
	WHERE Listen.user = ?
	ORDER BY Listen.date ASC
	;
	`
	rows, err := s.db.Query(query, user)
	if err != nil {
		return nil, fmt.Errorf("querying scrobbles: %w", err)
	}
	defer rows.Close()

	var events []scrobble.Event
	for rows.Next() {
		var e scrobble.Event
		if err := rows.Scan(&e.Artist, &e.Album, &e.Track, &e.UTS); err != nil {
			return nil, fmt.Errorf("scanning scrobble: %w", err)
		}
		e.UTCTime = time.Unix(e.UTS, 0).UTC().Format(utcTimeFormat)
		events = append(events, e)
	}
	return events, rows.Err()
}
