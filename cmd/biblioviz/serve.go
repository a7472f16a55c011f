// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/biblioviz/internal/scopus"
	"github.com/pdiddy/biblioviz/internal/server"
	"github.com/pdiddy/biblioviz/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	Long: `Serve starts the dashboard HTTP server. Searches run through the web UI
are kept in memory for the lifetime of the process so charts and
animations can be re-sliced without re-querying the API.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if cfg.Scopus.APIKey == "" {
		return fmt.Errorf("no Scopus API key: set --api-key, API_KEY, or .secrets/scopus-api-key")
	}
	if address, _ := cmd.Flags().GetString("address"); address != "" {
		cfg.Server.Address = address
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	store, err := session.NewStore()
	if err != nil {
		return err
	}
	defer store.Close()

	client := scopus.NewClient(cfg.Scopus)
	srv := server.NewServer(cfg.Server, cfg.Analysis, client, store, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
