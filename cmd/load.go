/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/scrobbleworks/playback-tools/internal/enrich"
	"github.com/scrobbleworks/playback-tools/internal/scrobble"
	"github.com/scrobbleworks/playback-tools/internal/sessions"
	"github.com/scrobbleworks/playback-tools/internal/store"
)

// loadRawEvents reads the raw scrobble log either from the --input CSV or
// from the local database for --user.
func loadRawEvents() ([]scrobble.Event, error) {
	if input := viper.GetString("input"); input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", input, err)
		}
		defer f.Close()

		events, err := scrobble.ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", input, err)
		}
		return events, nil
	}

	user := strings.ToLower(viper.GetString("user"))
	if user == "" {
		return nil, fmt.Errorf("either --input or --user is required")
	}

	db, err := store.New(viper.GetString("database"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	events, err := db.GetScrobbles(user)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no listening data for %q - run fetch first", user)
	}
	return events, nil
}

// loadProcessed runs the full pipeline over the raw log: enrichment, session
// segmentation and per-session aggregation.
func loadProcessed() ([]scrobble.Event, []sessions.Stat, error) {
	raw, err := loadRawEvents()
	if err != nil {
		return nil, nil, err
	}

	events, err := enrich.Process(raw, viper.GetString("timezone"))
	if err != nil {
		return nil, nil, err
	}
	sessions.Assign(events, viper.GetInt64("session-gap"))
	return events, sessions.Aggregate(events), nil
}
