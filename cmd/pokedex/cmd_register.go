package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/models"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Register a new Pokémon",
		Example: `  pokedex register --id 25 --name Pikachu --type Electric --height 0.4 --weight 6 --ability Static`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, view, closeStore, err := newSession(cmd)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			defer closeStore()

			view.SetForm(applyFieldFlags(cmd, models.Form{}))
			if err := ctrl.Register(cmd.Context()); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return nil
		},
	}

	registerFieldFlags(cmd)
	return cmd
}
