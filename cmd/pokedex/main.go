package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/config"
	"github.com/ajitpratap0/pokedex/internal/controller"
	"github.com/ajitpratap0/pokedex/internal/metrics"
	"github.com/ajitpratap0/pokedex/internal/store"
)

var (
	cfg        *config.Config
	configPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "Pokédex catalog of Pokémon records",
		Long:          "Register, modify, release (soft delete), search and list Pokémon records from the command line or a desktop form.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			logger.Debug().Str("command", cmd.Name()).Interface("metrics", metrics.Snapshot()).Msg("done")
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.pokedex/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(
		listCmd(),
		registerCmd(),
		updateCmd(),
		releaseCmd(),
		searchCmd(),
		initCmd(),
		healthCmd(),
		guiCmd(),
	)
	return rootCmd
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg != nil {
		if l, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = l
		}
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	if cfg != nil && cfg.Logging.Format == "json" {
		out = os.Stderr
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func newStore(logger zerolog.Logger) (store.Store, error) {
	return store.NewSQLStore(
		cfg.Database.Driver,
		cfg.Database.DataSourceName(),
		cfg.Database.Table,
		logger,
	)
}

// newSession connects to the configured store and returns a controller driving
// a terminal view on cmd's streams. The returned func closes the store.
func newSession(cmd *cobra.Command) (*controller.Controller, *terminalView, func(), error) {
	logger := newLogger()
	st, err := newStore(logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to store: %w", err)
	}
	view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin())
	ctrl := controller.New(st, view, logger)
	return ctrl, view, func() { _ = st.Close() }, nil
}
