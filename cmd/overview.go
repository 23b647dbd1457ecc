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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrobbleworks/playback-tools/internal/analysis"
)

var overviewCmd = &cobra.Command{
	Use:   "overview [from] [to (optional)]",
	Short: "Shows the most streamed artist, song, album and day for a period",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printOverview(os.Stdout, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func printOverview(out io.Writer, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	events, _, err := loadProcessed()
	if err != nil {
		return err
	}

	ov, err := analysis.BuildOverview(events, start, end)
	if err != nil {
		return err
	}

	const dateFormat = "2006-01-02"
	fmt.Fprintf(out, "Streaming overview: %s to %s\n", start.Format(dateFormat), end.Format(dateFormat))
	fmt.Fprintf(out, "Total streams: %d\n\n", ov.TotalStreams)
	fmt.Fprintf(out, "Most active day: %s (%d streams)\n", ov.TopDate, ov.TopDateStreams)
	fmt.Fprintf(out, "Most streamed artist: %s (%d streams)\n", ov.TopArtist, ov.TopArtistStreams)
	fmt.Fprintf(out, "Most streamed song: %s by %s (%d streams)\n", ov.TopSong, ov.TopSongArtist, ov.TopSongStreams)
	fmt.Fprintf(out, "Most streamed album: %s by %s (%d streams)\n", ov.TopAlbum, ov.TopAlbumArtist, ov.TopAlbumStreams)
	return nil
}
