package store

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
)

// sqliteLowerFunc is the SQLite scalar used in place of the built-in LOWER,
// which only folds ASCII letters.
const sqliteLowerFunc = "pokedex_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLowerFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return lowerText(v), nil
		case []byte:
			return lowerText(string(v)), nil
		default:
			return lowerText(fmt.Sprint(v)), nil
		}
	})
}

// lowerText lower-cases s with Unicode rules. Search queries, SQLite names and
// MockStore names all go through it so every store matches the same way.
func lowerText(s string) string {
	return cases.Lower(language.Und).String(s)
}
