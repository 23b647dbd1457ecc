package clustering

import (
	"testing"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

func TestSessionInsights(t *testing.T) {
	local := func(hour, minute int) time.Time {
		return time.Date(2021, time.March, 6, hour, minute, 0, 0, time.UTC)
	}
	events := []scrobble.Event{
		{SessionID: 2, DatetimeLocal: local(21, 5), Weekday: "saturday",
			PrimaryArtist: "Artist A", AlbumFinal: "Album A", Track: "Track 1",
			FirstListenAny: true},
		{SessionID: 2, DatetimeLocal: local(21, 40), Weekday: "saturday",
			PrimaryArtist: "Artist A", AlbumFinal: "Album A", Track: "Track 2"},
		{SessionID: 2, DatetimeLocal: local(22, 10), Weekday: "saturday",
			PrimaryArtist: "Artist B", AlbumFinal: "Album B", Track: "Track 1"},
		{SessionID: 3, DatetimeLocal: local(23, 50), Weekday: "saturday",
			PrimaryArtist: "Artist C", AlbumFinal: "Album C", Track: "Track 9"},
	}

	insights, err := SessionInsights(events, 2)
	if err != nil {
		t.Fatalf("SessionInsights error: %v", err)
	}
	if insights.UniqueArtists != 2 || insights.UniqueAlbums != 2 || insights.UniqueSongs != 2 {
		t.Errorf("Unexpected unique counts: %+v", insights)
	}
	if insights.Discoveries != 1 {
		t.Errorf("Expected 1 discovery, got %d", insights.Discoveries)
	}
	if insights.Duration != "1 hour, 5 minutes" {
		t.Errorf("Unexpected duration: %q", insights.Duration)
	}
	if insights.TimeDescription != "9:05 PM till 10:10 PM" {
		t.Errorf("Unexpected time description: %q", insights.TimeDescription)
	}
	if insights.StartDateDescription != "Saturday, March 06" {
		t.Errorf("Unexpected date description: %q", insights.StartDateDescription)
	}
	if len(insights.Events) != 3 {
		t.Errorf("Expected 3 session events, got %d", len(insights.Events))
	}
}

func TestSessionInsights_crossesMidnight(t *testing.T) {
	events := []scrobble.Event{
		{SessionID: 0, Weekday: "friday", PrimaryArtist: "A", AlbumFinal: "X", Track: "T1",
			DatetimeLocal: time.Date(2021, time.March, 5, 23, 45, 0, 0, time.UTC)},
		{SessionID: 0, Weekday: "saturday", PrimaryArtist: "A", AlbumFinal: "X", Track: "T2",
			DatetimeLocal: time.Date(2021, time.March, 6, 0, 20, 0, 0, time.UTC)},
	}
	insights, err := SessionInsights(events, 0)
	if err != nil {
		t.Fatalf("SessionInsights error: %v", err)
	}
	want := "11:45 PM till Saturday, March 06 0:20 AM"
	if insights.TimeDescription != want {
		t.Errorf("Expected %q, got %q", want, insights.TimeDescription)
	}
	if insights.Duration != "35 minutes" {
		t.Errorf("Unexpected duration: %q", insights.Duration)
	}
	if insights.StartDateDescription != "Friday, March 05" {
		t.Errorf("Unexpected date description: %q", insights.StartDateDescription)
	}
}

func TestSessionInsights_notFound(t *testing.T) {
	events := []scrobble.Event{{SessionID: 0}}
	if _, err := SessionInsights(events, 7); err == nil {
		t.Fatal("Expected error for unknown session id")
	}
}

func TestReadableTime(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "0:05 AM"},
		{9, 5, "9:05 AM"},
		{11, 59, "11:59 AM"},
		{12, 30, "12:30 PM"},
		{13, 7, "1:07 PM"},
		{23, 0, "11:00 PM"},
	}
	for _, c := range cases {
		ts := time.Date(2021, time.January, 1, c.hour, c.minute, 0, 0, time.UTC)
		if got := readableTime(ts); got != c.want {
			t.Errorf("readableTime(%d:%02d) = %q, expected %q", c.hour, c.minute, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45 minutes"},
		{1 * time.Minute, "1 minute"},
		{0, "0 minutes"},
		{time.Hour + 5*time.Minute, "1 hour, 5 minutes"},
		{2*time.Hour + 1*time.Minute, "2 hours, 1 minute"},
		{3 * time.Hour, "3 hours, 0 minutes"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", c.d, got, c.want)
		}
	}
}
