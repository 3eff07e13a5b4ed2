package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search active Pokémon by name (case-insensitive) or ID substring",
		Long:  "Search active Pokémon whose name contains the query, ignoring case, or whose ID contains it as text. An empty query lists every active Pokémon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, view, closeStore, err := newSession(cmd)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			defer closeStore()

			if _, err := ctrl.Search(cmd.Context(), strings.Join(args, " ")); err != nil {
				return fmt.Errorf("search: %w", err)
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
