// Package metrics counts catalog operations in expvar counters.
package metrics

import "expvar"

// Operation counters.
var (
	RefreshTotal    = expvar.NewInt("pokedex_refresh_total")
	RegisterTotal   = expvar.NewInt("pokedex_register_total")
	DuplicateTotal  = expvar.NewInt("pokedex_duplicate_total")
	ModifyTotal     = expvar.NewInt("pokedex_modify_total")
	ReleaseTotal    = expvar.NewInt("pokedex_release_total")
	SearchTotal     = expvar.NewInt("pokedex_search_total")
	RejectedTotal   = expvar.NewInt("pokedex_rejected_input_total")
	StoreErrorTotal = expvar.NewInt("pokedex_store_errors_total")
)

var all = map[string]*expvar.Int{
	"refresh":      RefreshTotal,
	"register":     RegisterTotal,
	"duplicate":    DuplicateTotal,
	"modify":       ModifyTotal,
	"release":      ReleaseTotal,
	"search":       SearchTotal,
	"rejected":     RejectedTotal,
	"store_errors": StoreErrorTotal,
}

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Snapshot returns the current value of every counter keyed by short name.
func Snapshot() map[string]int64 {
	out := make(map[string]int64, len(all))
	for name, c := range all {
		out[name] = c.Value()
	}
	return out
}
