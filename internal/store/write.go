package store

import (
	"database/sql"
	"fmt"
	"time"
)

type TrackImport struct {
	Artist    string
	Album     string
	TrackName string
	DateUTS   int64
}

// CreateUser ensures a user exists in the database.
func (s *Store) CreateUser(user string) error {
	row := s.db.QueryRow("SELECT name FROM User WHERE name = ?", user)
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		_, err := s.db.Exec("INSERT INTO User (name) VALUES (?)", user)
		if err != nil {
			return fmt.Errorf("inserting user %q: %w", user, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking user %q: %w", user, err)
	}
	return nil
}

func (s *Store) SetLastUpdated(user string, updated time.Time) error {
	_, err := s.db.Exec("UPDATE User SET last_updated = ? WHERE name = ?", updated, user)
	if err != nil {
		return fmt.Errorf("updating last_updated for %q: %w", user, err)
	}
	return nil
}

// AddRecentTracks inserts a batch of tracks transactionally.
func (s *Store) AddRecentTracks(user string, tracks []TrackImport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, track := range tracks {
		if err := createArtist(tx, track.Artist); err != nil {
			return err
		}
		if err := createAlbum(tx, track.Artist, track.Album); err != nil {
			return err
		}
		trackID, err := createTrack(tx, track.Artist, track.Album, track.TrackName)
		if err != nil {
			return err
		}
		if err := createListen(tx, user, trackID, track.DateUTS); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func createArtist(tx *sql.Tx, name string) error {
	var dummy string
	err := tx.QueryRow("SELECT name FROM Artist WHERE name = ?", name).Scan(&dummy)
	if err == sql.ErrNoRows {
		_, err := tx.Exec("INSERT INTO Artist (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("inserting artist %q: %w", name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking artist %q: %w", name, err)
	}
	return nil
}

func createAlbum(tx *sql.Tx, artist, name string) error {
	var dummy string
	err := tx.QueryRow("SELECT name FROM Album WHERE artist = ? AND name = ?", artist, name).Scan(&dummy)
	if err == sql.ErrNoRows {
		_, err := tx.Exec("INSERT INTO Album (artist, name) VALUES (?, ?)", artist, name)
		if err != nil {
			return fmt.Errorf("inserting album %q for %q: %w", name, artist, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking album %q: %w", name, err)
	}
	return nil
}

func createTrack(tx *sql.Tx, artist, album, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM Track WHERE artist = ? AND album = ? AND name = ?", artist, album, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking track %q: %w", name, err)
	}

	res, err := tx.Exec("INSERT INTO Track (artist, album, name) VALUES (?, ?, ?)", artist, album, name)
	if err != nil {
		return 0, fmt.Errorf("inserting track %q: %w", name, err)
	}
	return res.LastInsertId()
}

func createListen(tx *sql.Tx, user string, trackID int64, date int64) error {
	// Check for duplicate listen
	var dummy int64
	err := tx.QueryRow("SELECT id FROM Listen WHERE user = ? AND date = ? AND track = ?", user, date, trackID).Scan(&dummy)
	if err == nil {
		return nil // Already exists
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking listen: %w", err)
	}

	_, err = tx.Exec("INSERT INTO Listen (user, track, date) VALUES (?, ?, ?)", user, trackID, date)
	if err != nil {
		return fmt.Errorf("inserting listen: %w", err)
	}
	return nil
}
