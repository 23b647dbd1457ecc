package enrich

import (
	"testing"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

func TestSplitArtists(t *testing.T) {
	events := []scrobble.Event{
		{Artist: "Solo Artist"},
		{Artist: "Lead Artist, Feature One, Feature Two"},
	}
	splitArtists(events)

	if events[0].PrimaryArtist != "Solo Artist" {
		t.Errorf("Expected primary %q, got %q", "Solo Artist", events[0].PrimaryArtist)
	}
	if events[0].FeaturedArtists != nil {
		t.Errorf("Expected no featured artists, got %v", events[0].FeaturedArtists)
	}

	if events[1].PrimaryArtist != "Lead Artist" {
		t.Errorf("Expected primary %q, got %q", "Lead Artist", events[1].PrimaryArtist)
	}
	if len(events[1].FeaturedArtists) != 2 || events[1].FeaturedArtists[0] != "Feature One" {
		t.Errorf("Unexpected featured artists: %v", events[1].FeaturedArtists)
	}
}

func TestSplitArtists_orderInsensitiveKey(t *testing.T) {
	events := []scrobble.Event{
		{Artist: "Artist A, Artist B"},
		{Artist: "Artist B, Artist A"},
	}
	splitArtists(events)
	if events[0].ArtistKey() != events[1].ArtistKey() {
		t.Errorf("Expected identical artist keys, got %q and %q",
			events[0].ArtistKey(), events[1].ArtistKey())
	}
	if events[0].PrimaryArtist == events[1].PrimaryArtist {
		t.Error("Primary artist should keep the listed order")
	}
}

func TestTimeOfDay(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "late night"},
		{5, "late night"},
		{6, "morning"},
		{12, "morning"},
		{13, "afternoon"},
		{17, "afternoon"},
		{18, "evening"},
		{21, "evening"},
		{22, "night"},
		{23, "night"},
	}
	for _, c := range cases {
		if got := timeOfDay(c.hour); got != c.want {
			t.Errorf("timeOfDay(%d) = %q, expected %q", c.hour, got, c.want)
		}
	}
}

func TestDeriveTemporal(t *testing.T) {
	// 2020-12-25 07:30:00 UTC, a Friday in winter.
	events := []scrobble.Event{{UTS: 1608881400}}
	deriveTemporal(events, time.UTC)

	e := events[0]
	if e.Year != 2020 || e.Month != 12 || e.Day != 25 {
		t.Errorf("Unexpected calendar fields: %d-%d-%d", e.Year, e.Month, e.Day)
	}
	if e.Season != "winter" {
		t.Errorf("Expected winter, got %q", e.Season)
	}
	if e.Weekday != "friday" {
		t.Errorf("Expected friday, got %q", e.Weekday)
	}
	if e.Date != "2020-12-25" {
		t.Errorf("Unexpected date: %q", e.Date)
	}
	if e.Hour != 7 || e.TimeOfDay != "morning" {
		t.Errorf("Expected hour 7 morning, got %d %q", e.Hour, e.TimeOfDay)
	}
}

func TestDeriveTemporal_localHour(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("Loading location: %v", err)
	}
	// 2020-07-01 02:00:00 UTC is 19:00 the previous day in Los Angeles.
	events := []scrobble.Event{{UTS: 1593568800}}
	deriveTemporal(events, loc)

	e := events[0]
	if e.Day != 1 {
		t.Errorf("Calendar fields should stay UTC, got day %d", e.Day)
	}
	if e.Hour != 19 || e.TimeOfDay != "evening" {
		t.Errorf("Expected local hour 19 evening, got %d %q", e.Hour, e.TimeOfDay)
	}
}

func TestDeriveTemporal_sortsByUTS(t *testing.T) {
	events := []scrobble.Event{{UTS: 300}, {UTS: 100}, {UTS: 200}}
	deriveTemporal(events, time.UTC)
	for i := 1; i < len(events); i++ {
		if events[i-1].UTS > events[i].UTS {
			t.Fatalf("Events not sorted: %d before %d", events[i-1].UTS, events[i].UTS)
		}
	}
}

func TestFlagDiscoveries(t *testing.T) {
	events := []scrobble.Event{
		{UTS: 1, Artist: "Artist A", Album: "Album A", Track: "Track 1"},
		{UTS: 2, Artist: "Artist A", Album: "Album A", Track: "Track 1"},
		{UTS: 3, Artist: "Artist A", Album: "Album A", Track: "Track 2"},
		{UTS: 4, Artist: "Artist B", Album: "Album B", Track: "Track 1"},
	}
	splitArtists(events)
	canonicalizeAlbums(events)
	flagDiscoveries(events)

	e := events[0]
	if !e.FirstArtistListen || !e.FirstSongListen || !e.FirstAlbumListen || !e.FirstListenAny {
		t.Errorf("First event should set every flag: %+v", e)
	}

	e = events[1]
	if e.FirstArtistListen || e.FirstSongListen || e.FirstAlbumListen || e.FirstListenAny {
		t.Errorf("Repeat should set no flags: %+v", e)
	}

	e = events[2]
	if e.FirstArtistListen {
		t.Error("Artist already seen for new track")
	}
	if !e.FirstSongListen || !e.FirstListenAny {
		t.Error("New track should be a song discovery")
	}

	e = events[3]
	if !e.FirstArtistListen || !e.FirstSongListen || !e.FirstAlbumListen {
		t.Errorf("New artist should set every flag: %+v", e)
	}
}

func TestProcess(t *testing.T) {
	events := []scrobble.Event{
		{UTS: 1608881400, Artist: "Artist A", Album: "", Track: "Lonely Track"},
		{UTS: 1608881100, Artist: "Artist A", Album: "Album A", Track: "Track 1"},
	}
	processed, err := Process(events, "UTC")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(processed) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(processed))
	}
	if processed[0].UTS != 1608881100 {
		t.Errorf("Expected ascending uts order, got %d first", processed[0].UTS)
	}
	// Empty album backfilled from the track name before canonicalization.
	for _, e := range processed {
		if e.Track == "Lonely Track" && e.AlbumFinal != "Lonely Track" {
			t.Errorf("Expected backfilled album, got %q", e.AlbumFinal)
		}
	}
	for _, e := range processed {
		if !e.FirstArtistListen {
			// Only the chronologically first event discovers the artist.
			if e.UTS == 1608881100 {
				t.Error("First event should be an artist discovery")
			}
		}
	}
}

func TestProcess_badTimezone(t *testing.T) {
	_, err := Process(nil, "Not/AZone")
	if err == nil {
		t.Fatal("Expected error for unknown timezone")
	}
}
