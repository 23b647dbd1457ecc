// Package sessions partitions the enriched event table into listening
// sessions and reduces them to per-session statistics.
package sessions

import "github.com/scrobbleworks/playback-tools/internal/scrobble"

// DefaultGap is the largest inter-event gap, in seconds, that still keeps two
// events in the same session. Ten minutes tolerates long tracks while
// separating distinct listening occasions.
const DefaultGap = 600

type span struct {
	start int64
	end   int64
}

// Assign walks the chronologically sorted events once and gives each one a
// session id, starting at 0. A gap strictly greater than gap seconds closes
// the current session; a closed session is never reopened. Each event also
// gets its session's length in hours, (max uts − min uts) / 3600.
//
// The scan is inherently sequential: every decision depends on the
// immediately preceding event. Events must already be sorted by uts.
func Assign(events []scrobble.Event, gap int64) {
	if len(events) == 0 {
		return
	}
	if gap <= 0 {
		gap = DefaultGap
	}

	spans := []span{{start: events[0].UTS, end: events[0].UTS}}
	events[0].SessionID = 0
	id := 0
	for i := 1; i < len(events); i++ {
		if events[i].UTS-events[i-1].UTS > gap {
			id++
			spans = append(spans, span{start: events[i].UTS, end: events[i].UTS})
		} else {
			spans[id].end = events[i].UTS
		}
		events[i].SessionID = id
	}

	const secondsPerHour = 3600
	for i := range events {
		s := spans[events[i].SessionID]
		events[i].SessionLength = float64(s.end-s.start) / secondsPerHour
	}
}
