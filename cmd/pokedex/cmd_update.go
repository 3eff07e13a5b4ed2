package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/models"
	"github.com/ajitpratap0/pokedex/internal/store"
)

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Modify an active Pokémon; fields not given keep their current values",
		Example: `  pokedex update --id 25 --ability "Lightning Rod"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			idText, _ := cmd.Flags().GetString(idFlag)
			id, err := models.Form{ID: idText}.ParseID()
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}

			ctrl, view, closeStore, err := newSession(cmd)
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}
			defer closeStore()

			if err := ctrl.Refresh(ctx); err != nil {
				return fmt.Errorf("update: %w", err)
			}
			if !ctrl.SelectID(id) {
				return fmt.Errorf("update: %w: no active pokemon with id %d", store.ErrNotFound, id)
			}

			view.SetForm(applyFieldFlags(cmd, view.Form()))
			if err := ctrl.Modify(ctx); err != nil {
				return fmt.Errorf("update: %w", err)
			}
			return nil
		},
	}

	registerFieldFlags(cmd)
	_ = cmd.MarkFlagRequired(idFlag)
	return cmd
}
