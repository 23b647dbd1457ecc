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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/scrobbleworks/playback-tools/internal/clustering"
)

var insightsCmd = &cobra.Command{
	Use:   "insights <session-id>",
	Short: "Summarizes one listening session",
	Long:  `Prints the narrative summary and tracklist for a single session.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printInsights(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func printInsights(arg string) error {
	sessionID, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", arg, err)
	}

	events, _, err := loadProcessed()
	if err != nil {
		return err
	}

	insights, err := clustering.SessionInsights(events, sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Session %d - %s\n", sessionID, insights.StartDateDescription)
	fmt.Printf("Duration: %s\n", insights.Duration)
	fmt.Printf("Time: %s\n", insights.TimeDescription)
	fmt.Printf("Unique songs: %d, artists: %d, albums: %d, discoveries: %d\n\n",
		insights.UniqueSongs, insights.UniqueArtists, insights.UniqueAlbums, insights.Discoveries)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Artist", "Album", "Song"})
	for i := range insights.Events {
		e := &insights.Events[i]
		table.Append([]string{e.Artist, e.AlbumFinal, e.Track})
	}
	table.Render()
	return nil
}
