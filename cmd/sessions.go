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
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [from] [to (optional)]",
	Short: "Lists detected listening sessions",
	Long: `Shows per-session statistics, most recent first. Optional date arguments
restrict sessions by their starting time; date strings look like 'yyyy',
'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printSessions(args, viper.GetInt("number"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	var number int
	sessionsCmd.Flags().IntVarP(&number, "number", "n", 20, "number of sessions to show")
	viper.BindPFlag("number", sessionsCmd.Flags().Lookup("number"))
}

func printSessions(args []string, numToShow int) error {
	_, stats, err := loadProcessed()
	if err != nil {
		return err
	}

	total := len(stats)
	if len(args) > 0 {
		start, end, err := parseDateRangeFromArgs(args)
		if err != nil {
			return err
		}
		var filtered []sessions.Stat
		for _, s := range stats {
			begin := time.Unix(s.StartUTS, 0).UTC()
			if !begin.Before(start) && begin.Before(end) {
				filtered = append(filtered, s)
			}
		}
		stats = filtered
	}

	loc, err := time.LoadLocation(viper.GetString("timezone"))
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Session", "Start", "Hours", "Streams", "Artists", "Songs", "Discoveries"})
	shown := 0
	for i := len(stats) - 1; i >= 0 && shown < numToShow; i-- {
		s := stats[i]
		table.Append([]string{
			strconv.Itoa(s.SessionID),
			time.Unix(s.StartUTS, 0).In(loc).Format("2006-01-02 15:04"),
			strconv.FormatFloat(s.SessionLength, 'f', 2, 64),
			strconv.Itoa(s.StreamCount),
			strconv.Itoa(s.UniqueArtists),
			strconv.Itoa(s.UniqueSongs),
			strconv.Itoa(s.FirstListens),
		})
		shown++
	}
	table.Render()

	fmt.Printf("Showing %d of %d matching sessions (%d total)\n", shown, len(stats), total)
	return nil
}
