package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/gui"
)

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop catalog form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("gui: connecting to store: %w", err)
			}
			defer func() { _ = st.Close() }()

			gui.Run(cmd.Context(), st, cfg.GUI, logger)
			return nil
		},
	}
}
