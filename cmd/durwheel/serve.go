package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/durwheel/durwheel/internal/api"
	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/logging"
	"github.com/durwheel/durwheel/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API without the TUI",
	Long: `Serve starts only the HTTP API. Use it to expose the quantizer
and the selection history to other tools while no terminal is attached.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, fmt.Sprintf("Port to listen on (default %d)", config.DefaultAPIPort))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.APIPort = servePort
	}
	cfg.Normalize()

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logFile, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	server := api.NewServer(cfg, store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.APIPort)
	}()

	fmt.Printf("durwheel API listening on :%d\n", cfg.APIPort)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
