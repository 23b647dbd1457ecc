package enrich

import (
	"sort"
	"time"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
)

var seasons = map[time.Month]string{
	time.December: "winter", time.January: "winter", time.February: "winter",
	time.March: "spring", time.April: "spring", time.May: "spring",
	time.June: "summer", time.July: "summer", time.August: "summer",
	time.September: "fall", time.October: "fall", time.November: "fall",
}

var weekdays = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// timeOfDay buckets a local hour into one of five labels. The ranges are
// half-open except the first: [0,5] late night, (5,12] morning,
// (12,17] afternoon, (17,21] evening, (21,24] night.
func timeOfDay(hour int) string {
	switch {
	case hour <= 5:
		return "late night"
	case hour <= 12:
		return "morning"
	case hour <= 17:
		return "afternoon"
	case hour <= 21:
		return "evening"
	default:
		return "night"
	}
}

// deriveTemporal fills calendar and clock features from each event's UTC
// instant, then stable-sorts the table ascending by uts. Every downstream
// stage depends on this ordering.
func deriveTemporal(events []scrobble.Event, loc *time.Location) {
	for i := range events {
		e := &events[i]
		utc := time.Unix(e.UTS, 0).UTC()
		e.Datetime = utc
		e.Year = utc.Year()
		e.Month = int(utc.Month())
		e.Day = utc.Day()
		e.Season = seasons[utc.Month()]
		e.Weekday = weekdays[utc.Weekday()]
		e.Date = utc.Format("2006-01-02")

		local := utc.In(loc)
		e.DatetimeLocal = local
		e.Hour = local.Hour()
		e.TimeOfDay = timeOfDay(e.Hour)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].UTS < events[j].UTS
	})
}
