// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biblioviz/internal/extract"
	"github.com/pdiddy/biblioviz/internal/report"
	"github.com/pdiddy/biblioviz/internal/scopus"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a search equation and print publication statistics",
	Long: `Search runs a Scopus search equation, fetches up to --limit records in
pages of 25, and prints the static count tables: terms, organizations,
countries, authors, and publications per year.

Use --from/--to to restrict the tables to an inclusive publication-year
range, --json for machine-readable output, and --save to write the full
report to a YAML file for later reuse.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	equation, _ := cmd.Flags().GetString("equation")
	limit, _ := cmd.Flags().GetInt("limit")
	fromYear, _ := cmd.Flags().GetInt("from")
	toYear, _ := cmd.Flags().GetInt("to")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")
	top, _ := cmd.Flags().GetInt("top")

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
	if top == 0 {
		top = cfg.Analysis.TopEntries
	}

	client := scopus.NewClient(cfg.Scopus)
	records, available, err := client.SearchAll(context.Background(), eq, limit)
	if err != nil {
		return err
	}

	if fromYear > 0 || toYear > 0 {
		if toYear <= 0 {
			toYear = 9999
		}
		records = extract.FilterByPeriod(records, fromYear, toYear)
	}

	r := report.Build(equation, records, available, 0)

	if savePath != "" {
		if err := report.Write(savePath, r); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", savePath)
	}

	if jsonOutput {
		return report.FormatJSON(r, os.Stdout)
	}
	report.FormatTable(r, os.Stdout, top)
	return nil
}

func init() {
	searchCmd.Flags().StringP("equation", "q", "", "Scopus search equation (required)")
	searchCmd.Flags().Int("limit", 0, "maximum records to fetch (0 = config default)")
	searchCmd.Flags().Int("from", 0, "restrict to publication years >= from")
	searchCmd.Flags().Int("to", 0, "restrict to publication years <= to")
	searchCmd.Flags().Bool("json", false, "output the report as JSON")
	searchCmd.Flags().String("save", "", "write the full report to this YAML file")
	searchCmd.Flags().Int("top", 0, "rows per table (0 = config default, -1 = all)")
	searchCmd.MarkFlagRequired("equation")

	rootCmd.AddCommand(searchCmd)
}
