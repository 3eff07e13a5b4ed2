package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the catalog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			out := cmd.OutOrStdout()

			st, err := newStore(logger)
			if err != nil {
				fmt.Fprintf(out, "Database (%s): FAIL (%v)\n", cfg.Database.Driver, err)
				return fmt.Errorf("health check failed")
			}
			defer func() { _ = st.Close() }()

			if err := st.Ping(cmd.Context()); err != nil {
				fmt.Fprintf(out, "Database (%s): FAIL (%v)\n", cfg.Database.Driver, err)
				return fmt.Errorf("health check failed")
			}
			fmt.Fprintf(out, "Database (%s): OK\n", cfg.Database.Driver)
			return nil
		},
	}
}
