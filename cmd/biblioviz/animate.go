// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biblioviz/internal/report"
	"github.com/pdiddy/biblioviz/internal/scopus"
	"github.com/pdiddy/biblioviz/internal/temporal"
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Compute rolling-window animation frames for a search equation",
	Long: `Animate fetches records for a search equation and computes one frame per
calendar month between the earliest and latest publication dates. Each
frame counts countries, authors, and words over the trailing --window
calendar months. The window is clamped to the dataset's span, capped at
24 months.

Output is the full report as JSON on stdout; use --save to also write it
as YAML.`,
	RunE: runAnimate,
}

func runAnimate(cmd *cobra.Command, args []string) error {
	equation, _ := cmd.Flags().GetString("equation")
	limit, _ := cmd.Flags().GetInt("limit")
	window, _ := cmd.Flags().GetInt("window")
	savePath, _ := cmd.Flags().GetString("save")

	eq, err := scopus.ParseEquation(equation)
	if err != nil {
		return err
	}

	cfg := loadConfig(cmd)
	if cfg.Scopus.APIKey == "" {
		return fmt.Errorf("no Scopus API key: set --api-key, API_KEY, or .secrets/scopus-api-key")
	}
	if limit <= 0 {
		limit = cfg.Analysis.MaxResults
	}
	if window <= 0 {
		window = cfg.Analysis.DefaultWindow
	}

	client := scopus.NewClient(cfg.Scopus)
	records, available, err := client.SearchAll(context.Background(), eq, limit)
	if err != nil {
		return err
	}

	ds := temporal.BuildDataset(records)
	clamped := temporal.ClampWindow(ds, window)
	if clamped != window {
		fmt.Fprintf(os.Stderr, "Window clamped to %d months (dataset span)\n", clamped)
	}

	r := report.Build(equation, records, available, clamped)

	if savePath != "" {
		if err := report.Write(savePath, r); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", savePath)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func init() {
	animateCmd.Flags().StringP("equation", "q", "", "Scopus search equation (required)")
	animateCmd.Flags().Int("limit", 0, "maximum records to fetch (0 = config default)")
	animateCmd.Flags().Int("window", 0, "rolling window in months (0 = config default)")
	animateCmd.Flags().String("save", "", "write the full report to this YAML file")
	animateCmd.MarkFlagRequired("equation")

	rootCmd.AddCommand(animateCmd)
}
