package sessions

import (
	"testing"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

func eventsAt(uts ...int64) []scrobble.Event {
	events := make([]scrobble.Event, len(uts))
	for i, u := range uts {
		events[i] = scrobble.Event{UTS: u}
	}
	return events
}

func TestAssign(t *testing.T) {
	events := eventsAt(1000, 1400, 5000)
	Assign(events, 600)

	wantIDs := []int{0, 0, 1}
	for i, want := range wantIDs {
		if events[i].SessionID != want {
			t.Errorf("Event %d: expected session %d, got %d", i, want, events[i].SessionID)
		}
	}
	// Session 0 spans 400 seconds; session 1 has a single event.
	if got := events[0].SessionLength; got != 400.0/3600.0 {
		t.Errorf("Expected session length %f, got %f", 400.0/3600.0, got)
	}
	if got := events[2].SessionLength; got != 0 {
		t.Errorf("Expected zero-length session, got %f", got)
	}
}

func TestAssign_gapBoundary(t *testing.T) {
	// A gap of exactly the threshold stays in the session; one second more
	// splits it.
	joined := eventsAt(1000, 1600)
	Assign(joined, 600)
	if joined[1].SessionID != 0 {
		t.Errorf("Gap of exactly 600 should not split, got session %d", joined[1].SessionID)
	}

	split := eventsAt(1000, 1601)
	Assign(split, 600)
	if split[1].SessionID != 1 {
		t.Errorf("Gap of 601 should split, got session %d", split[1].SessionID)
	}
}

func TestAssign_partition(t *testing.T) {
	events := eventsAt(100, 200, 2000, 2100, 2200, 9000)
	Assign(events, 600)

	// Session ids are contiguous from 0 and never decrease.
	prev := 0
	for i, e := range events {
		if e.SessionID < prev || e.SessionID > prev+1 {
			t.Fatalf("Event %d: session id jumped from %d to %d", i, prev, e.SessionID)
		}
		prev = e.SessionID
	}
	if events[len(events)-1].SessionID != 2 {
		t.Errorf("Expected 3 sessions, last id is %d", events[len(events)-1].SessionID)
	}
}

func TestAssign_singleEvent(t *testing.T) {
	events := eventsAt(5000)
	Assign(events, 600)
	if events[0].SessionID != 0 || events[0].SessionLength != 0 {
		t.Errorf("Single event should be session 0 with length 0: %+v", events[0])
	}
}

func TestAssign_defaultGap(t *testing.T) {
	events := eventsAt(1000, 1500)
	Assign(events, 0)
	if events[1].SessionID != 0 {
		t.Errorf("Zero gap should fall back to default, got session %d", events[1].SessionID)
	}
}

func TestAssign_empty(t *testing.T) {
	Assign(nil, 600)
}
