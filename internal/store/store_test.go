package store

import (
	"path/filepath"
	"testing"
	"time"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "playback.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}

	return store
}

func TestCreateUser(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	user := "testuser"
	err := s.CreateUser(user)
	if err != nil {
		t.Fatalf("CreateUser(%q) error: %v", user, err)
	}

	// Idempotency
	err = s.CreateUser(user)
	if err != nil {
		t.Fatalf("CreateUser(%q) error: %v", user, err)
	}
}

func TestAddRecentTracks(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	user := "testuser"
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tracks := []TrackImport{
		{
			Artist:    "Test Artist",
			Album:     "Test Album",
			TrackName: "Test Track",
			DateUTS:   1600000000,
		},
	}

	err := s.AddRecentTracks(user, tracks)
	if err != nil {
		t.Fatalf("AddRecentTracks failed: %v", err)
	}

	// Verify data was inserted
	row := s.db.QueryRow("SELECT COUNT(*) FROM Listen WHERE user = ?", user)
	var count int
	if err := row.Scan(&count); err != nil {
		t.Fatalf("querying count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 listen, got %d", count)
	}

	// Test idempotent insert (same data)
	err = s.AddRecentTracks(user, tracks)
	if err != nil {
		t.Fatalf("AddRecentTracks (repeat) failed: %v", err)
	}
	row = s.db.QueryRow("SELECT COUNT(*) FROM Listen WHERE user = ?", user)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("querying count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 listen after repeat insert, got %d", count)
	}
}

func TestGetScrobbles(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	user := "testuser"
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tracks := []TrackImport{
		{Artist: "Artist B", Album: "Album B", TrackName: "Track 2", DateUTS: 1600000200},
		{Artist: "Artist A", Album: "Album A", TrackName: "Track 1", DateUTS: 1600000000},
	}
	if err := s.AddRecentTracks(user, tracks); err != nil {
		t.Fatalf("AddRecentTracks failed: %v", err)
	}

	events, err := s.GetScrobbles(user)
	if err != nil {
		t.Fatalf("GetScrobbles failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	// Ordered ascending by date regardless of insert order
	if events[0].UTS != 1600000000 || events[1].UTS != 1600000200 {
		t.Errorf("Events out of order: %d, %d", events[0].UTS, events[1].UTS)
	}
	if events[0].Artist != "Artist A" || events[0].Album != "Album A" || events[0].Track != "Track 1" {
		t.Errorf("Unexpected event fields: %+v", events[0])
	}
	if events[0].UTCTime != "13 Sep 2020, 12:26" {
		t.Errorf("Unexpected utc_time: %q", events[0].UTCTime)
	}
}

func TestGetScrobbles_emptyUser(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	events, err := s.GetScrobbles("nobody")
	if err != nil {
		t.Fatalf("GetScrobbles failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}

func TestGetLatestListen(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	user := "testuser"
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	latest, err := s.GetLatestListen(user)
	if err != nil {
		t.Fatalf("GetLatestListen failed: %v", err)
	}
	if !latest.IsZero() {
		t.Errorf("Expected zero time for no listens, got %v", latest)
	}

	tracks := []TrackImport{
		{Artist: "Artist A", Album: "Album A", TrackName: "Track 1", DateUTS: 1600000000},
		{Artist: "Artist A", Album: "Album A", TrackName: "Track 2", DateUTS: 1600000200},
	}
	if err := s.AddRecentTracks(user, tracks); err != nil {
		t.Fatalf("AddRecentTracks failed: %v", err)
	}

	latest, err = s.GetLatestListen(user)
	if err != nil {
		t.Fatalf("GetLatestListen failed: %v", err)
	}
	if !latest.Equal(time.Unix(1600000200, 0)) {
		t.Errorf("Expected latest listen at 1600000200, got %v", latest)
	}
}

func TestSetLastUpdated(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	user := "testuser"
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	updated := time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastUpdated(user, updated); err != nil {
		t.Fatalf("SetLastUpdated failed: %v", err)
	}

	got, err := s.GetLastUpdated(user)
	if err != nil {
		t.Fatalf("GetLastUpdated failed: %v", err)
	}
	if !got.Equal(updated) {
		t.Errorf("Expected %v, got %v", updated, got)
	}
}
