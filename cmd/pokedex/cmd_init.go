package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			st, err := newStore(logger)
			if err != nil {
				return fmt.Errorf("init: connecting to store: %w", err)
			}
			defer func() { _ = st.Close() }()

			if err := st.EnsureTable(cmd.Context()); err != nil {
				return fmt.Errorf("init: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Table %s ready (%s).\n", cfg.Database.Table, cfg.Database.Driver)
			return nil
		},
	}
}
