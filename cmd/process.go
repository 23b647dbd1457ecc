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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scrobbleworks/playback-tools/internal/scrobble"
	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Runs the enrichment pipeline and exports the results",
	Long: `Enriches the raw scrobble log with canonical album names, temporal
features, first-listen flags and listening sessions, then writes the
per-event and per-session tables as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runProcess(viper.GetString("output"), viper.GetString("sessions-output"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	var output string
	processCmd.Flags().StringVarP(&output, "output", "o", "enriched.csv", "Path for the enriched per-event CSV")
	viper.BindPFlag("output", processCmd.Flags().Lookup("output"))

	var sessionsOutput string
	processCmd.Flags().StringVar(&sessionsOutput, "sessions-output", "session_stats.csv", "Path for the per-session statistics CSV")
	viper.BindPFlag("sessions-output", processCmd.Flags().Lookup("sessions-output"))
}

func runProcess(outputPath, sessionsPath string) error {
	events, stats, err := loadProcessed()
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()
	if err := scrobble.WriteEnrichedCSV(out, events); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	sessOut, err := os.Create(sessionsPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", sessionsPath, err)
	}
	defer sessOut.Close()
	if err := sessions.WriteStatsCSV(sessOut, stats); err != nil {
		return fmt.Errorf("writing %s: %w", sessionsPath, err)
	}

	fmt.Printf("Processed %d scrobbles into %d sessions\n", len(events), len(stats))
	fmt.Printf("Wrote %s and %s\n", outputPath, sessionsPath)
	return nil
}
