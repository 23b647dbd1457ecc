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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scrobbleworks/playback-tools/internal/analysis"
)

type ReportConfig struct {
	To     string
	From   string
	DryRun bool
	Start  time.Time
	End    time.Time
}

var reportCmd = &cobra.Command{
	Use:   "report <address> [date] [date]",
	Short: "Emails a listening report",
	Long: `Emails the period overview and session summary to the specified address.
Optional date arguments select the period (e.g. '2023-01' or '2023-01 2023-06');
with no dates, the previous month is reported.`,
	Args: cobra.RangeArgs(1, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !viper.GetBool("dry_run") && viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		var start, end time.Time
		var err error
		if len(args) > 1 {
			start, end, err = parseDateRangeFromArgs(args[1:])
			if err != nil {
				fmt.Printf("Error parsing dates: %v\n", err)
				os.Exit(1)
			}
		} else {
			// Default to last month
			now := time.Now()
			start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}

		config := ReportConfig{
			To:     args[0],
			From:   viper.GetString("from"),
			DryRun: viper.GetBool("dry_run"),
			Start:  start,
			End:    end,
		}
		if err := sendReport(config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	var from string
	reportCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", reportCmd.Flags().Lookup("from"))

	var dryRun bool
	reportCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dry_run", reportCmd.Flags().Lookup("dry_run"))

	var sendgridApiKey string
	reportCmd.Flags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", reportCmd.Flags().Lookup("sendgrid_api_key"))
}

func sendReport(config ReportConfig) error {
	body, err := buildReportBody(config.Start, config.End)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would send to %s:\n\n%s", config.To, body)
		return nil
	}

	from := mail.NewEmail("playback-tools", config.From)
	to := mail.NewEmail(config.To, config.To)
	subject := fmt.Sprintf("Listening report for %s", config.Start.Format("January 2006"))
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	_, err = client.Send(message)
	if err != nil {
		return fmt.Errorf("sendReport: %w", err)
	}

	fmt.Printf("Sent report to %s\n", config.To)
	return nil
}

func buildReportBody(start, end time.Time) (string, error) {
	events, stats, err := loadProcessed()
	if err != nil {
		return "", err
	}

	ov, err := analysis.BuildOverview(events, start, end)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	user := viper.GetString("user")
	if user == "" {
		user = "you"
	}
	if err := analysis.WriteReport(&buf, user, ov, stats); err != nil {
		return "", err
	}
	return buf.String(), nil
}
