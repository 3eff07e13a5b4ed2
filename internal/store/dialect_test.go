package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectForDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   Dialect
	}{
		{DriverMySQL, DialectMySQL},
		{DriverPgx, DialectPostgres},
		{DriverPq, DialectPostgres},
		{DriverSQLite, DialectSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := DialectForDriver(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DialectForDriver("sqlserver")
	assert.Error(t, err)
}

func TestValidTableName(t *testing.T) {
	assert.True(t, ValidTableName("pokemones"))
	assert.True(t, ValidTableName("_pokedex_2"))
	assert.False(t, ValidTableName(""))
	assert.False(t, ValidTableName("2pokemones"))
	assert.False(t, ValidTableName("poke mones"))
	assert.False(t, ValidTableName("pokemones;--"))
}

func TestBuildQueries_MySQL(t *testing.T) {
	q := buildQueries(DialectMySQL, "pokemones")

	assert.Equal(t, "SELECT Id, Nombre, Tipo, Altura, Peso, Habilidad FROM pokemones WHERE Activo = 1", q.list)
	assert.Equal(t, "INSERT INTO pokemones (Id, Nombre, Tipo, Altura, Peso, Habilidad, Activo) VALUES (?, ?, ?, ?, ?, ?, 1)", q.insert)
	assert.Equal(t, "UPDATE pokemones SET Nombre = ?, Tipo = ?, Altura = ?, Peso = ?, Habilidad = ? WHERE Id = ?", q.update)
	assert.Equal(t, "UPDATE pokemones SET Activo = 0 WHERE Id = ? AND Activo = 1", q.release)
	assert.Contains(t, q.search, "INSTR(LOWER(Nombre), ?) > 0 OR INSTR(CAST(Id AS CHAR), ?) > 0")
	assert.True(t, strings.HasPrefix(q.create, "CREATE TABLE IF NOT EXISTS pokemones ("))
}

func TestBuildQueries_Postgres(t *testing.T) {
	q := buildQueries(DialectPostgres, "pokedex")

	assert.Equal(t, "INSERT INTO pokedex (Id, Nombre, Tipo, Altura, Peso, Habilidad, Activo) VALUES ($1, $2, $3, $4, $5, $6, TRUE)", q.insert)
	assert.Equal(t, "UPDATE pokedex SET Activo = FALSE WHERE Id = $1 AND Activo = TRUE", q.release)
	assert.Contains(t, q.search, "STRPOS(LOWER(Nombre), $1) > 0 OR STRPOS(CAST(Id AS TEXT), $2) > 0")
	assert.Contains(t, q.create, "Activo BOOLEAN NOT NULL DEFAULT TRUE")
}

func TestBuildQueries_SQLite(t *testing.T) {
	q := buildQueries(DialectSQLite, "pokemones")
	assert.Contains(t, q.search, "INSTR(pokedex_lower(Nombre), ?) > 0 OR INSTR(CAST(Id AS TEXT), ?) > 0")
	assert.NotContains(t, q.search, "LOWER(Nombre)")
	assert.Contains(t, q.create, "Id INTEGER PRIMARY KEY")
}
