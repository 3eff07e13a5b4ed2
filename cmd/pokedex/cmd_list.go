package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active Pokémon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, view, closeStore, err := newSession(cmd)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			defer closeStore()

			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("list: %w", err)
			}
			if asJSON {
				return view.printJSON()
			}
			return view.print()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}
