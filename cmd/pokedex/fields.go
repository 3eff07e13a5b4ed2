package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/pokedex/internal/models"
)

// Record field flags shared by register and update.
const (
	idFlag      = "id"
	nameFlag    = "name"
	typeFlag    = "type"
	heightFlag  = "height"
	weightFlag  = "weight"
	abilityFlag = "ability"
)

// registerFieldFlags adds the record field flags to cmd. Values stay as text
// so they go through the same validation as the desktop form.
func registerFieldFlags(cmd *cobra.Command) {
	cobraflags.RegisterMap(cmd, map[string]cobraflags.Flag{
		idFlag: &cobraflags.StringFlag{
			Name:  idFlag,
			Usage: "Pokédex number (unique, 32-bit integer)",
		},
		nameFlag: &cobraflags.StringFlag{
			Name:  nameFlag,
			Usage: "Pokémon name",
		},
		typeFlag: &cobraflags.StringFlag{
			Name:  typeFlag,
			Usage: "Pokémon type, e.g. Electric",
		},
		heightFlag: &cobraflags.StringFlag{
			Name:  heightFlag,
			Usage: "height in meters",
		},
		weightFlag: &cobraflags.StringFlag{
			Name:  weightFlag,
			Usage: "weight in kilograms",
		},
		abilityFlag: &cobraflags.StringFlag{
			Name:  abilityFlag,
			Usage: "signature ability",
		},
	})
}

// applyFieldFlags overlays the field flags explicitly set on cmd onto f.
func applyFieldFlags(cmd *cobra.Command, f models.Form) models.Form {
	flags := cmd.Flags()
	set := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	set(idFlag, &f.ID)
	set(nameFlag, &f.Name)
	set(typeFlag, &f.Type)
	set(heightFlag, &f.Height)
	set(weightFlag, &f.Weight)
	set(abilityFlag, &f.Ability)
	return f
}
