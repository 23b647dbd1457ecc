package scrobble

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Columns are the required input columns of a raw scrobbles export.
var Columns = []string{"uts", "utc_time", "artist", "album", "track"}

// SchemaError reports a mismatch between the expected input columns and the
// columns actually present. It halts the pipeline before any stage runs.
type SchemaError struct {
	Expected []string
	Found    []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column names do not match: expected columns: [%s], loaded columns: [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Found, ", "))
}

// ReadCSV parses a raw scrobbles export. The header must contain all of
// Columns (any order, extra columns are ignored); otherwise a *SchemaError
// is returned.
func ReadCSV(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Expected: Columns, Found: nil}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, want := range Columns {
		if _, ok := index[want]; !ok {
			return nil, &SchemaError{Expected: Columns, Found: header}
		}
	}

	var events []Event
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		line++

		uts, err := strconv.ParseInt(record[index["uts"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing uts %q: %w", line, record[index["uts"]], err)
		}
		events = append(events, Event{
			UTS:     uts,
			UTCTime: record[index["utc_time"]],
			Artist:  record[index["artist"]],
			Album:   record[index["album"]],
			Track:   record[index["track"]],
		})
	}
	return events, nil
}

// enrichedColumns is the output schema of the enriched per-event table.
var enrichedColumns = []string{
	"uts", "utc_time", "artist", "album", "song_title",
	"artist_sorted", "primary_artist", "featured_artists", "album_final",
	"year", "month", "day", "season", "weekday", "date",
	"datetime", "datetime_local", "hour", "time_of_day",
	"first_artist_listen", "first_song_listen", "first_album_listen", "first_listen_any",
	"session_id", "session_length",
}

// WriteEnrichedCSV writes the fully enriched event table as delimited text.
func WriteEnrichedCSV(w io.Writer, events []Event) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(enrichedColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range events {
		e := &events[i]
		record := []string{
			strconv.FormatInt(e.UTS, 10),
			e.UTCTime,
			e.Artist,
			e.Album,
			e.Track,
			strings.Join(e.ArtistSorted, ", "),
			e.PrimaryArtist,
			strings.Join(e.FeaturedArtists, ", "),
			e.AlbumFinal,
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Day),
			e.Season,
			e.Weekday,
			e.Date,
			e.Datetime.Format(time.RFC3339),
			e.DatetimeLocal.Format(time.RFC3339),
			strconv.Itoa(e.Hour),
			e.TimeOfDay,
			strconv.FormatBool(e.FirstArtistListen),
			strconv.FormatBool(e.FirstSongListen),
			strconv.FormatBool(e.FirstAlbumListen),
			strconv.FormatBool(e.FirstListenAny),
			strconv.Itoa(e.SessionID),
			strconv.FormatFloat(e.SessionLength, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing event at uts %d: %w", e.UTS, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
