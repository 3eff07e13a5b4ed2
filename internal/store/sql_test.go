package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-extras/go-kit/must"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/pokedex/internal/models"
)

// newSQLiteStore returns a SQLStore over a fresh database file with the table created.
func newSQLiteStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokedex_test.db")

	st, err := NewSQLStore(DriverSQLite, path, "pokemones", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.EnsureTable(context.Background()))
	return st, path
}

var (
	bulbasaur  = models.Pokemon{ID: 1, Name: "Bulbasaur", Type: "Grass", Height: 0.7, Weight: 6.9, Ability: "Overgrow", Active: true}
	charmander = models.Pokemon{ID: 4, Name: "Charmander", Type: "Fire", Height: 0.6, Weight: 8.5, Ability: "Blaze", Active: true}
	squirtle   = models.Pokemon{ID: 7, Name: "Squirtle", Type: "Water", Height: 0.5, Weight: 9, Ability: "Torrent", Active: true}
	pikachu    = models.Pokemon{ID: 25, Name: "Pikachu", Type: "Electric", Height: 0.4, Weight: 6, Ability: "Static", Active: true}
)

func seed(t *testing.T, st Store, pokemon ...models.Pokemon) {
	t.Helper()
	for _, p := range pokemon {
		require.NoError(t, st.Insert(context.Background(), p))
	}
}

func TestSQLStore_InsertThenListActive(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()

	list, err := st.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	seed(t, st, bulbasaur, charmander)

	list, err = st.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Pokemon{bulbasaur, charmander}, list)
	for _, p := range list {
		assert.True(t, p.Active)
	}
}

func TestSQLStore_InsertForcesActive(t *testing.T) {
	st, _ := newSQLiteStore(t)
	p := squirtle
	p.Active = false
	seed(t, st, p)

	list, err := st.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Active)
}

func TestSQLStore_DuplicateID(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, pikachu)

	clone := pikachu
	clone.Name = "Raichu"
	err := st.Insert(ctx, clone)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID), "got %v", err)

	list, err := st.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pikachu", list[0].Name)
}

func TestSQLStore_DuplicateOfReleasedID(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, pikachu)
	require.NoError(t, st.Release(ctx, pikachu.ID))

	err := st.Insert(ctx, pikachu)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSQLStore_Update(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, charmander)

	evolved := models.Pokemon{ID: 4, Name: "Charmeleon", Type: "Fire", Height: 1.1, Weight: 19, Ability: "Blaze"}
	require.NoError(t, st.Update(ctx, evolved))

	list, err := st.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	evolved.Active = true
	assert.Equal(t, evolved, list[0])
}

func TestSQLStore_UpdateSameValuesStillMatches(t *testing.T) {
	st, _ := newSQLiteStore(t)
	seed(t, st, charmander)
	assert.NoError(t, st.Update(context.Background(), charmander))
}

func TestSQLStore_UpdateUnknownID(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, bulbasaur)

	ghost := bulbasaur
	ghost.ID = 999
	err := st.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := st.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Pokemon{bulbasaur}, list)
}

func TestSQLStore_ReleaseHidesButKeepsRow(t *testing.T) {
	st, path := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, bulbasaur, squirtle)

	require.NoError(t, st.Release(ctx, squirtle.ID))

	list, err := st.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Pokemon{bulbasaur}, list)

	db := must.Must(sql.Open(DriverSQLite, path))
	defer db.Close()
	var active bool
	require.NoError(t, db.QueryRow("SELECT Activo FROM pokemones WHERE Id = ?", squirtle.ID).Scan(&active))
	assert.False(t, active)
}

func TestSQLStore_ReleaseUnknownOrReleased(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	seed(t, st, pikachu)

	assert.ErrorIs(t, st.Release(ctx, 404), ErrNotFound)

	require.NoError(t, st.Release(ctx, pikachu.ID))
	assert.ErrorIs(t, st.Release(ctx, pikachu.ID), ErrNotFound)
}

func TestSQLStore_Search(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()
	evoli := models.Pokemon{ID: 133, Name: "ÉVOLI", Type: "Normal", Height: 0.3, Weight: 6.5, Ability: "Adaptabilité", Active: true}
	seed(t, st, bulbasaur, charmander, squirtle, pikachu, evoli)
	require.NoError(t, st.Release(ctx, squirtle.ID))

	tests := []struct {
		name  string
		query string
		want  []models.Pokemon
	}{
		{"name substring ignores case", "CHU", []models.Pokemon{pikachu}},
		{"id substring", "2", []models.Pokemon{pikachu}},
		{"name or id", "a", []models.Pokemon{bulbasaur, charmander, pikachu}},
		{"released rows are hidden", "squirt", []models.Pokemon{}},
		{"wildcards are literal", "%", []models.Pokemon{}},
		{"no match", "mewtwo", []models.Pokemon{}},
		{"accented upper-case name, lower-case query", "évoli", []models.Pokemon{evoli}},
		{"accented mixed-case query", "éVo", []models.Pokemon{evoli}},
		{"empty query matches every active row", "", []models.Pokemon{bulbasaur, charmander, pikachu, evoli}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLStore_NullColumnsReadAsZero(t *testing.T) {
	st, path := newSQLiteStore(t)

	db := must.Must(sql.Open(DriverSQLite, path))
	defer db.Close()
	_, err := db.Exec("INSERT INTO pokemones (Id, Nombre, Activo) VALUES (132, 'Ditto', 1)")
	require.NoError(t, err)

	list, err := st.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Pokemon{{ID: 132, Name: "Ditto", Active: true}}, list)
}

func TestSQLStore_Ping(t *testing.T) {
	st, _ := newSQLiteStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestNewSQLStore_Rejects(t *testing.T) {
	_, err := NewSQLStore("oracle", "dsn", "pokemones", zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported driver")

	_, err = NewSQLStore(DriverSQLite, "x.db", "pokemones; DROP TABLE x", zerolog.Nop())
	assert.ErrorContains(t, err, "invalid table name")

	_, err = NewSQLStore(DriverSQLite, "", "pokemones", zerolog.Nop())
	assert.Error(t, err)
}

func TestNewSQLStore_MySQLFoundRows(t *testing.T) {
	st, err := NewSQLStore(DriverMySQL, "root:secret@tcp(localhost:3306)/pokedex_db", "pokemones", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DialectMySQL, st.Dialect())
	assert.Contains(t, st.dsn, "clientFoundRows=true")
}
