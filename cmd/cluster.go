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
	"github.com/spf13/viper"

	"github.com/scrobbleworks/playback-tools/internal/clustering"
	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Clusters listening sessions into behavioral archetypes",
	Long: `Standardizes and encodes per-session statistics, fits a k-means model
with a fixed seed, and prints a per-cluster summary. Re-running with the
same data and seed yields identical labels.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runCluster(viper.GetInt("clusters"), viper.GetInt64("seed"), viper.GetString("features-output"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	var clusters int
	clusterCmd.Flags().IntVarP(&clusters, "clusters", "k", clustering.DefaultClusters, "number of clusters (2-6)")
	viper.BindPFlag("clusters", clusterCmd.Flags().Lookup("clusters"))

	var seed int64
	clusterCmd.Flags().Int64Var(&seed, "seed", clustering.DefaultSeed, "random seed for reproducible fits")
	viper.BindPFlag("seed", clusterCmd.Flags().Lookup("seed"))

	var featuresOutput string
	clusterCmd.Flags().StringVar(&featuresOutput, "features-output", "", "optional path for the transformed feature CSV")
	viper.BindPFlag("features-output", clusterCmd.Flags().Lookup("features-output"))
}

func runCluster(k int, seed int64, featuresPath string) error {
	if k < 2 || k > 6 {
		return fmt.Errorf("clusters must be between 2 and 6, got %d", k)
	}

	_, stats, err := loadProcessed()
	if err != nil {
		return err
	}

	result, err := clustering.Fit(stats, k, seed)
	if err != nil {
		return err
	}
	for _, name := range result.Constant {
		fmt.Printf("Warning: feature %s has zero variance, treated as constant\n", name)
	}

	for i := range stats {
		stats[i].Cluster = result.Labels[i]
	}

	printClusterSummary(stats, k)

	if featuresPath != "" {
		out, err := os.Create(featuresPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", featuresPath, err)
		}
		defer out.Close()
		if err := clustering.WriteFeaturesCSV(out, result); err != nil {
			return fmt.Errorf("writing %s: %w", featuresPath, err)
		}
		fmt.Printf("Wrote transformed features to %s\n", featuresPath)
	}
	return nil
}

func printClusterSummary(stats []sessions.Stat, k int) {
	type summary struct {
		count          int
		length         float64
		diversity      float64
		discoveryRatio float64
	}
	summaries := make([]summary, k)
	for _, s := range stats {
		agg := &summaries[s.Cluster]
		agg.count++
		agg.length += s.SessionLength
		agg.diversity += s.ArtistDiversity
		agg.discoveryRatio += s.FirstListenRatio
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Cluster", "Sessions", "Avg Hours", "Avg Artist Diversity", "Avg Discovery Ratio"})
	for label, agg := range summaries {
		n := float64(agg.count)
		if n == 0 {
			n = 1
		}
		table.Append([]string{
			strconv.Itoa(label),
			strconv.Itoa(agg.count),
			strconv.FormatFloat(agg.length/n, 'f', 2, 64),
			strconv.FormatFloat(agg.diversity/n, 'f', 2, 64),
			strconv.FormatFloat(agg.discoveryRatio/n, 'f', 2, 64),
		})
	}
	table.Render()

	fmt.Printf("Clustered %d sessions into %d groups\n", len(stats), k)
}
