package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/durwheel/durwheel/internal/api"
	"github.com/durwheel/durwheel/internal/app"
	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/logging"
	"github.com/durwheel/durwheel/internal/storage"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/watcher"
)

var (
	flagConfig  string
	flagTheme   string
	flagAPI     bool
	flagAPIPort int
)

var rootCmd = &cobra.Command{
	Use:   "durwheel",
	Short: "A terminal duration picker with quantized wheels",
	Long: `durwheel is a terminal duration picker. Durations roll on
per-unit wheels, snap to configurable intervals and clamp to an
optional range. Confirmed selections are kept in a local history
and can be served over a small HTTP API.`,
	Args: cobra.NoArgs,
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: catppuccin, dracula, nord")
	rootCmd.Flags().BoolVar(&flagAPI, "api", false, "Start the HTTP API alongside the TUI")
	rootCmd.Flags().IntVar(&flagAPIPort, "api-port", 0, "HTTP API port (default from config)")

	rootCmd.AddCommand(quantizeCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagAPI {
		cfg.APIEnabled = true
	}
	if flagAPIPort > 0 {
		cfg.APIPort = flagAPIPort
	}
	cfg.Normalize()

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	theme.SetThemesDir(filepath.Join(cfg.DataDir, "themes"))

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

	var server *api.Server
	if cfg.APIEnabled {
		server = api.NewServer(cfg, store)
		go func() {
			if err := server.Start(cfg.APIPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("api server stopped")
			}
		}()
	}

	model := app.New(cfg, store, server)
	p := tea.NewProgram(model, tea.WithAltScreen())

	var w *watcher.Watcher
	if cfg.WatchEnabled {
		w = watcher.New(cfg.Path(), time.Duration(cfg.WatchDebounce)*time.Millisecond)
		w.SetProgram(p)
		if err := w.Start(); err != nil {
			log.Warn().Err(err).Msg("config watcher failed to start")
			w = nil
		}
	}

	final, err := p.Run()
	if w != nil {
		w.Stop()
	}
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		server.Stop(ctx)
		cancel()
	}
	if err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		fmt.Println(m.Value())
	}
	return nil
}
