package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/models"
	"github.com/ajitpratap0/pokedex/internal/store"
)

func releaseCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "release <id>",
		Short: "Release (soft delete) an active Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := models.Form{ID: args[0]}.ParseID()
			if err != nil {
				return fmt.Errorf("release: %w", err)
			}

			ctrl, view, closeStore, err := newSession(cmd)
			if err != nil {
				return fmt.Errorf("release: %w", err)
			}
			defer closeStore()
			view.assumeYes = yes

			if err := ctrl.Refresh(ctx); err != nil {
				return fmt.Errorf("release: %w", err)
			}
			if !ctrl.SelectID(id) {
				return fmt.Errorf("release: %w: no active pokemon with id %d", store.ErrNotFound, id)
			}

			var (
				released bool
				relErr   error
			)
			ctrl.Release(ctx, func(ok bool, err error) { released, relErr = ok, err })
			if relErr != nil {
				return fmt.Errorf("release: %w", relErr)
			}
			if !released {
				fmt.Fprintln(cmd.OutOrStdout(), "Release cancelled.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "release without asking for confirmation")
	return cmd
}
