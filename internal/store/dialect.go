package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor spoken by a database/sql driver.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Driver names registered with database/sql by this package's imports.
const (
	DriverMySQL  = "mysql"
	DriverPgx    = "pgx"
	DriverPq     = "postgres"
	DriverSQLite = "sqlite"
)

// ValidDrivers is the set of all supported driver names.
var ValidDrivers = []string{DriverMySQL, DriverPgx, DriverPq, DriverSQLite}

// DialectForDriver maps a database/sql driver name onto its SQL dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case DriverMySQL:
		return DialectMySQL, nil
	case DriverPgx, DriverPq:
		return DialectPostgres, nil
	case DriverSQLite:
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver %q: must be one of %s", driver, strings.Join(ValidDrivers, "|"))
	}
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name can be spliced into a statement as a bare identifier.
func ValidTableName(name string) bool {
	return tableNameRe.MatchString(name)
}

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) boolLiteral(v bool) string {
	switch {
	case d == DialectPostgres && v:
		return "TRUE"
	case d == DialectPostgres:
		return "FALSE"
	case v:
		return "1"
	default:
		return "0"
	}
}

func (d Dialect) idAsText() string {
	if d == DialectMySQL {
		return "CAST(Id AS CHAR)"
	}
	return "CAST(Id AS TEXT)"
}

// lower renders a Unicode-aware lower-casing of expr.
func (d Dialect) lower(expr string) string {
	if d == DialectSQLite {
		return sqliteLowerFunc + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// contains renders a substring test; unlike LIKE it gives no meaning to % or _.
func (d Dialect) contains(haystack, needle string) string {
	if d == DialectPostgres {
		return fmt.Sprintf("STRPOS(%s, %s) > 0", haystack, needle)
	}
	return fmt.Sprintf("INSTR(%s, %s) > 0", haystack, needle)
}

func (d Dialect) createTable(table string) string {
	switch d {
	case DialectMySQL:
		return "CREATE TABLE IF NOT EXISTS " + table + " (" +
			"Id INT NOT NULL PRIMARY KEY, " +
			"Nombre VARCHAR(100) NOT NULL, " +
			"Tipo VARCHAR(50) NULL, " +
			"Altura DOUBLE NULL, " +
			"Peso DOUBLE NULL, " +
			"Habilidad VARCHAR(100) NULL, " +
			"Activo TINYINT(1) NOT NULL DEFAULT 1)"
	case DialectPostgres:
		return "CREATE TABLE IF NOT EXISTS " + table + " (" +
			"Id INTEGER PRIMARY KEY, " +
			"Nombre VARCHAR(100) NOT NULL, " +
			"Tipo VARCHAR(50), " +
			"Altura DOUBLE PRECISION, " +
			"Peso DOUBLE PRECISION, " +
			"Habilidad VARCHAR(100), " +
			"Activo BOOLEAN NOT NULL DEFAULT TRUE)"
	default:
		return "CREATE TABLE IF NOT EXISTS " + table + " (" +
			"Id INTEGER PRIMARY KEY, " +
			"Nombre TEXT NOT NULL, " +
			"Tipo TEXT, " +
			"Altura REAL, " +
			"Peso REAL, " +
			"Habilidad TEXT, " +
			"Activo INTEGER NOT NULL DEFAULT 1)"
	}
}

// queries holds the statements for one dialect and table.
type queries struct {
	create  string
	list    string
	insert  string
	update  string
	release string
	search  string
}

const selectColumns = "Id, Nombre, Tipo, Altura, Peso, Habilidad"

func buildQueries(d Dialect, table string) queries {
	p := d.placeholder
	active := "Activo = " + d.boolLiteral(true)

	return queries{
		create: d.createTable(table),
		list:   "SELECT " + selectColumns + " FROM " + table + " WHERE " + active,
		insert: "INSERT INTO " + table + " (Id, Nombre, Tipo, Altura, Peso, Habilidad, Activo) " +
			"VALUES (" + strings.Join([]string{p(1), p(2), p(3), p(4), p(5), p(6)}, ", ") + ", " + d.boolLiteral(true) + ")",
		update: "UPDATE " + table + " SET Nombre = " + p(1) + ", Tipo = " + p(2) + ", Altura = " + p(3) +
			", Peso = " + p(4) + ", Habilidad = " + p(5) + " WHERE Id = " + p(6),
		release: "UPDATE " + table + " SET Activo = " + d.boolLiteral(false) + " WHERE Id = " + p(1) + " AND " + active,
		search: "SELECT " + selectColumns + " FROM " + table + " WHERE " + active +
			" AND (" + d.contains(d.lower("Nombre"), p(1)) + " OR " + d.contains(d.idAsText(), p(2)) + ")",
	}
}
