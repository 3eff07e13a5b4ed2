package models

import "strconv"

// Pokemon is one row of the catalog table.
type Pokemon struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type,omitempty"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
	Ability string  `json:"ability,omitempty"`
	Active  bool    `json:"active"`
}

// FormFromPokemon renders a record into entry-field text.
func FormFromPokemon(p Pokemon) Form {
	return Form{
		ID:      strconv.Itoa(p.ID),
		Name:    p.Name,
		Type:    p.Type,
		Height:  formatFloat(p.Height),
		Weight:  formatFloat(p.Weight),
		Ability: p.Ability,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
