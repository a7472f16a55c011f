// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the biblioviz CLI: fetch records
// from the Scopus Search API, derive count tables and rolling-window
// animation frames, and serve the interactive dashboard.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/biblioviz/internal/secrets"
	"github.com/pdiddy/biblioviz/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the biblioviz CLI.
var rootCmd = &cobra.Command{
	Use:   "biblioviz",
	Short: "Bibliometric search and visualization for the Scopus API",
	Long: `biblioviz runs search equations against the Scopus Search API and turns
the results into publication statistics: per-country, per-author, and
per-organization counts, term frequencies, and rolling-window animation
frames showing how the field evolved month by month.

Use search for one-off table output, animate for the temporal frames, and
serve for the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./biblioviz.yaml or ~/.config/biblioviz/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "Scopus API key (overrides API_KEY env and .secrets/scopus-api-key)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("biblioviz")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "biblioviz"))
		}
	}

	viper.SetEnvPrefix("BIBLIOVIZ")
	viper.AutomaticEnv()

	viper.SetDefault("scopus.timeout", "30s")
	viper.SetDefault("scopus.view", "STANDARD")
	viper.SetDefault("scopus.requests_per_second", 5.0)
	viper.SetDefault("analysis.max_results", 25)
	viper.SetDefault("analysis.top_entries", 25)
	viper.SetDefault("analysis.default_window", 6)
	viper.SetDefault("server.address", "127.0.0.1:8487")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the application configuration from viper and
// resolves the Scopus API key with flag > env > secrets-file precedence.
func loadConfig(cmd *cobra.Command) types.AppConfig {
	explicitKey, _ := cmd.Flags().GetString("api-key")

	return types.AppConfig{
		Scopus: types.ScopusConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scopus.timeout"),
				UserAgent: "biblioviz/" + version,
			},
			APIKey:            secrets.ResolveScopusKey(explicitKey, loadedSecrets),
			BaseURL:           viper.GetString("scopus.base_url"),
			View:              viper.GetString("scopus.view"),
			RequestsPerSecond: viper.GetFloat64("scopus.requests_per_second"),
		},
		Analysis: types.AnalysisConfig{
			MaxResults:    viper.GetInt("analysis.max_results"),
			TopEntries:    viper.GetInt("analysis.top_entries"),
			DefaultWindow: viper.GetInt("analysis.default_window"),
		},
		Server: types.ServerConfig{
			Address:         viper.GetString("server.address"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			IdleTimeout:     viper.GetDuration("server.idle_timeout"),
			ShutdownTimeout: shutdownTimeout(),
		},
	}
}

func shutdownTimeout() time.Duration {
	d := viper.GetDuration("server.shutdown_timeout")
	if d <= 0 {
		d = 10 * time.Second
	}
	return d
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
